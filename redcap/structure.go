package redcap

import (
	"context"

	"github.com/torosent/redcaplite/api"
)

// GetArms returns the project's arms, or only the numbered ones when arms is
// not empty.
func (c *Client) GetArms(ctx context.Context, arms ...int) ([]Arm, error) {
	return list[Arm](ctx, c, api.GetArms(api.GetArmsInput{Arms: arms}))
}

// ImportArms adds or renames arms. With override every existing arm not in
// arms is removed.
func (c *Client) ImportArms(ctx context.Context, arms []Arm, override bool) (int, error) {
	p, err := api.ImportArms(api.ImportArmsInput{Data: ToRecords(arms), Override: override})
	return c.count(ctx, p, err)
}

func (c *Client) DeleteArms(ctx context.Context, arms []int) (int, error) {
	p, err := api.DeleteArms(api.DeleteArmsInput{Arms: arms})
	return c.count(ctx, p, err)
}

func (c *Client) GetDAGs(ctx context.Context) ([]DAG, error) {
	return list[DAG](ctx, c, api.GetDAGs())
}

func (c *Client) ImportDAGs(ctx context.Context, dags []DAG) (int, error) {
	p, err := api.ImportDAGs(api.ImportInput{Data: ToRecords(dags)})
	return c.count(ctx, p, err)
}

// DeleteDAGs removes groups by unique group name.
func (c *Client) DeleteDAGs(ctx context.Context, dags []string) (int, error) {
	p, err := api.DeleteDAGs(api.DeleteDAGsInput{DAGs: dags})
	return c.count(ctx, p, err)
}

func (c *Client) GetUserDAGMappings(ctx context.Context) ([]UserDAGMapping, error) {
	return list[UserDAGMapping](ctx, c, api.GetUserDAGMappings())
}

func (c *Client) ImportUserDAGMappings(ctx context.Context, mappings []UserDAGMapping) (int, error) {
	p, err := api.ImportUserDAGMappings(api.ImportInput{Data: ToRecords(mappings)})
	return c.count(ctx, p, err)
}

func (c *Client) GetEvents(ctx context.Context, arms ...int) ([]Event, error) {
	return list[Event](ctx, c, api.GetEvents(api.GetEventsInput{Arms: arms}))
}

func (c *Client) ImportEvents(ctx context.Context, events []Event) (int, error) {
	p, err := api.ImportEvents(api.ImportInput{Data: ToRecords(events)})
	return c.count(ctx, p, err)
}

// DeleteEvents removes events by unique event name.
func (c *Client) DeleteEvents(ctx context.Context, events []string) (int, error) {
	p, err := api.DeleteEvents(api.DeleteEventsInput{Events: events})
	return c.count(ctx, p, err)
}

// GetFieldNames lists export field names, for every field when field is "".
func (c *Client) GetFieldNames(ctx context.Context, field string) ([]FieldName, error) {
	return list[FieldName](ctx, c, api.GetFieldNames(api.GetFieldNamesInput{Field: field}))
}

func (c *Client) GetInstruments(ctx context.Context) ([]Instrument, error) {
	return list[Instrument](ctx, c, api.GetInstruments())
}

func (c *Client) GetFormEventMappings(ctx context.Context, arms ...int) ([]FormEventMapping, error) {
	return list[FormEventMapping](ctx, c, api.GetFormEventMappings(api.GetFormEventMappingsInput{Arms: arms}))
}

func (c *Client) ImportFormEventMappings(ctx context.Context, mappings []FormEventMapping) (int, error) {
	p, err := api.ImportFormEventMappings(api.ImportInput{Data: ToRecords(mappings)})
	return c.count(ctx, p, err)
}

func (c *Client) GetRepeatingFormsEvents(ctx context.Context) ([]RepeatingFormEvent, error) {
	return list[RepeatingFormEvent](ctx, c, api.GetRepeatingFormsEvents())
}

func (c *Client) ImportRepeatingFormsEvents(ctx context.Context, items []RepeatingFormEvent) (int, error) {
	p, err := api.ImportRepeatingFormsEvents(api.ImportInput{Data: ToRecords(items)})
	return c.count(ctx, p, err)
}
