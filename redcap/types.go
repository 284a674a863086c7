package redcap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/torosent/redcaplite/api"
)

// Int is an integer the service may send as a number, a quoted number or an
// empty string. Empty and null decode as zero.
type Int int

func (n *Int) UnmarshalJSON(b []byte) error {
	v := gjson.ParseBytes(b)
	switch v.Type {
	case gjson.Null:
		*n = 0
	case gjson.Number:
		*n = Int(v.Int())
	case gjson.String:
		s := strings.TrimSpace(v.Str)
		if s == "" {
			*n = 0
			return nil
		}
		i, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("redcap: %q is not an integer", v.Str)
		}
		*n = Int(i)
	default:
		return fmt.Errorf("redcap: %s is not an integer", b)
	}
	return nil
}

// Recorder is implemented by the types that can be imported.
type Recorder interface {
	Record() api.Record
}

// ToRecords converts typed items into import data, keeping slice order.
func ToRecords[T Recorder](items []T) api.Records {
	if items == nil {
		return nil
	}
	out := make(api.Records, len(items))
	for i, item := range items {
		out[i] = item.Record()
	}
	return out
}

type Arm struct {
	ArmNum Int    `json:"arm_num"`
	Name   string `json:"name"`
}

func (a Arm) Record() api.Record {
	return api.R("arm_num", int(a.ArmNum), "name", a.Name)
}

// DAG is a data access group. ID is zero for groups that do not exist yet.
type DAG struct {
	Name       string `json:"data_access_group_name"`
	UniqueName string `json:"unique_group_name"`
	ID         Int    `json:"data_access_group_id"`
}

func (d DAG) Record() api.Record {
	var id any = ""
	if d.ID != 0 {
		id = int(d.ID)
	}
	return api.R(
		"data_access_group_name", d.Name,
		"unique_group_name", d.UniqueName,
		"data_access_group_id", id,
	)
}

type UserDAGMapping struct {
	Username string `json:"username"`
	DAG      string `json:"redcap_data_access_group"`
}

func (m UserDAGMapping) Record() api.Record {
	return api.R("username", m.Username, "redcap_data_access_group", m.DAG)
}

type Event struct {
	EventName        string `json:"event_name"`
	ArmNum           Int    `json:"arm_num"`
	UniqueEventName  string `json:"unique_event_name"`
	CustomEventLabel string `json:"custom_event_label"`
	EventID          Int    `json:"event_id"`
	DayOffset        Int    `json:"day_offset"`
	OffsetMin        Int    `json:"offset_min"`
	OffsetMax        Int    `json:"offset_max"`
}

// Record returns the fields an event import accepts. The unique name and id
// are assigned by the service; zero offsets are left to its defaults.
func (e Event) Record() api.Record {
	rec := api.R("event_name", e.EventName, "arm_num", int(e.ArmNum))
	for _, f := range []api.Field{
		{Name: "day_offset", Value: int(e.DayOffset)},
		{Name: "offset_min", Value: int(e.OffsetMin)},
		{Name: "offset_max", Value: int(e.OffsetMax)},
	} {
		if f.Value != 0 {
			rec = append(rec, f)
		}
	}
	if e.CustomEventLabel != "" {
		rec = append(rec, api.Field{Name: "custom_event_label", Value: e.CustomEventLabel})
	}
	return rec
}

type FieldName struct {
	OriginalFieldName string `json:"original_field_name"`
	ChoiceValue       string `json:"choice_value"`
	ExportFieldName   string `json:"export_field_name"`
}

type Instrument struct {
	Name  string `json:"instrument_name"`
	Label string `json:"instrument_label"`
}

type FormEventMapping struct {
	ArmNum          Int    `json:"arm_num"`
	UniqueEventName string `json:"unique_event_name"`
	Form            string `json:"form"`
}

func (m FormEventMapping) Record() api.Record {
	return api.R("arm_num", int(m.ArmNum), "unique_event_name", m.UniqueEventName, "form", m.Form)
}

type UserRoleMapping struct {
	Username       string `json:"username"`
	UniqueRoleName string `json:"unique_role_name"`
}

func (m UserRoleMapping) Record() api.Record {
	return api.R("username", m.Username, "unique_role_name", m.UniqueRoleName)
}

// RepeatingFormEvent marks an instrument, or a whole event when FormName is
// empty, as repeating.
type RepeatingFormEvent struct {
	EventName       string `json:"event_name"`
	FormName        string `json:"form_name"`
	CustomFormLabel string `json:"custom_form_label"`
}

func (r RepeatingFormEvent) Record() api.Record {
	return api.R("event_name", r.EventName, "form_name", r.FormName, "custom_form_label", r.CustomFormLabel)
}

// FileRepositoryItem is a folder (FolderID set) or a file (DocID set).
type FileRepositoryItem struct {
	FolderID Int    `json:"folder_id"`
	DocID    Int    `json:"doc_id"`
	Name     string `json:"name"`
}

func (i FileRepositoryItem) IsFolder() bool {
	return i.FolderID != 0
}
