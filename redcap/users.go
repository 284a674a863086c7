package redcap

import (
	"context"

	"github.com/torosent/redcaplite/api"
)

// GetUsers returns every user with their privileges. Privilege fields vary
// between REDCap versions, so users are returned as ordered records.
func (c *Client) GetUsers(ctx context.Context) (api.Records, error) {
	return c.records(ctx, api.GetUsers())
}

func (c *Client) ImportUsers(ctx context.Context, users api.Records) (int, error) {
	p, err := api.ImportUsers(api.ImportInput{Data: users})
	return c.count(ctx, p, err)
}

func (c *Client) DeleteUsers(ctx context.Context, users []string) (int, error) {
	p, err := api.DeleteUsers(api.DeleteUsersInput{Users: users})
	return c.count(ctx, p, err)
}

func (c *Client) GetUserRoles(ctx context.Context) (api.Records, error) {
	return c.records(ctx, api.GetUserRoles())
}

func (c *Client) ImportUserRoles(ctx context.Context, roles api.Records) (int, error) {
	p, err := api.ImportUserRoles(api.ImportInput{Data: roles})
	return c.count(ctx, p, err)
}

// DeleteUserRoles removes roles by unique role name.
func (c *Client) DeleteUserRoles(ctx context.Context, roles []string) (int, error) {
	p, err := api.DeleteUserRoles(api.DeleteUserRolesInput{Roles: roles})
	return c.count(ctx, p, err)
}

func (c *Client) GetUserRoleMappings(ctx context.Context) ([]UserRoleMapping, error) {
	return list[UserRoleMapping](ctx, c, api.GetUserRoleMappings())
}

func (c *Client) ImportUserRoleMappings(ctx context.Context, mappings []UserRoleMapping) (int, error) {
	p, err := api.ImportUserRoleMappings(api.ImportInput{Data: ToRecords(mappings)})
	return c.count(ctx, p, err)
}
