package main

import (
	"github.com/spf13/cobra"

	"github.com/torosent/redcaplite/api"
)

func newRecordsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "records", Short: "Export, import, delete and rename records"}

	export := &cobra.Command{
		Use:   "export",
		Short: "Export records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := cmd.Flags()
			format, err := parseFormat(cmd, "format")
			if err != nil {
				return err
			}
			in := api.ExportRecordsInput{Format: format}
			in.Type, _ = f.GetString("type")
			in.Records, _ = f.GetStringSlice("records")
			in.Fields, _ = f.GetStringSlice("fields")
			in.Forms, _ = f.GetStringSlice("forms")
			in.Events, _ = f.GetStringSlice("events")
			in.RawOrLabel, _ = f.GetString("raw-or-label")
			in.ExportSurveyFields, _ = f.GetBool("survey-fields")
			in.ExportDataAccessGroups, _ = f.GetBool("dags")
			in.FilterLogic, _ = f.GetString("filter")
			if in.DateRangeBegin, err = parseTimeFlag(cmd, "since"); err != nil {
				return err
			}
			if in.DateRangeEnd, err = parseTimeFlag(cmd, "until"); err != nil {
				return err
			}
			res, err := a.client.ExportRecords(cmd.Context(), in)
			if err != nil {
				return err
			}
			return a.print(res)
		},
	}
	f := export.Flags()
	f.String("format", "json", "Format requested: json, csv or xml")
	f.String("type", "", "flat or eav")
	f.StringSlice("records", nil, "Records to export")
	f.StringSlice("fields", nil, "Fields to export")
	f.StringSlice("forms", nil, "Instruments to export")
	f.StringSlice("events", nil, "Events to export")
	f.String("raw-or-label", "", "Export raw values or labels: raw or label")
	f.Bool("survey-fields", false, "Include survey identifier and timestamp fields")
	f.Bool("dags", false, "Include the data access group field")
	f.String("filter", "", "Filter logic records must match")
	f.String("since", "", "Only records changed after this time, YYYY-MM-DD HH:MM")
	f.String("until", "", "Only records changed before this time, YYYY-MM-DD HH:MM")

	imp := &cobra.Command{
		Use:   "import",
		Short: "Import records from --data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, format, err := loadData(cmd)
			if err != nil {
				return err
			}
			f := cmd.Flags()
			in := api.ImportRecordsInput{Data: data, Format: format}
			in.Type, _ = f.GetString("type")
			in.OverwriteBehavior, _ = f.GetString("overwrite")
			in.ForceAutoNumber, _ = f.GetBool("auto-number")
			in.DateFormat, _ = f.GetString("date-format")
			in.ReturnContent, _ = f.GetString("return-content")
			res, err := a.client.ImportRecords(cmd.Context(), in)
			if err != nil {
				return err
			}
			return a.print(res)
		},
	}
	addDataFlags(imp)
	imp.Flags().String("type", "", "flat or eav")
	imp.Flags().String("overwrite", "", "normal or overwrite")
	imp.Flags().Bool("auto-number", false, "Let the server assign record names")
	imp.Flags().String("date-format", "", "MDY, DMY or YMD")
	imp.Flags().String("return-content", "", "count, ids or auto_ids")

	del := &cobra.Command{
		Use:   "delete RECORD...",
		Short: "Delete records",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			in := api.DeleteRecordsInput{Records: args}
			in.Arm, _ = f.GetString("arm")
			in.Instrument, _ = f.GetString("instrument")
			in.Event, _ = f.GetString("event")
			in.RepeatInstance, _ = f.GetInt("repeat-instance")
			in.DeleteLogging, _ = f.GetBool("delete-logging")
			return a.printCount(a.client.DeleteRecords(cmd.Context(), in))
		},
	}
	del.Flags().String("arm", "", "Only delete from this arm")
	del.Flags().String("instrument", "", "Only delete this instrument's data")
	del.Flags().String("event", "", "Only delete data of this event")
	del.Flags().Int("repeat-instance", 0, "Only delete this repeat instance")
	del.Flags().Bool("delete-logging", false, "Also delete the records' logging")

	rename := &cobra.Command{
		Use:   "rename RECORD NEW_NAME",
		Short: "Rename a record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			arm, _ := cmd.Flags().GetString("arm")
			err := a.client.RenameRecord(cmd.Context(), api.RenameRecordInput{Record: args[0], NewRecordName: args[1], Arm: arm})
			if err != nil {
				return err
			}
			return a.print(args[1])
		},
	}
	rename.Flags().String("arm", "", "Only rename the record in this arm")

	next := &cobra.Command{
		Use:   "next-name",
		Short: "Print the next auto-numbered record name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, err := a.client.GenerateNextRecordName(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(name)
		},
	}

	cmd.AddCommand(export, imp, del, rename, next)
	return cmd
}
