package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/torosent/redcaplite/api"
)

const timeFlagLayout = "2006-01-02 15:04"

func newVersionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the REDCap version of the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := a.client.GetVersion(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(v)
		},
	}
}

func newProjectCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "project", Short: "Show, create and update the project"}

	info := &cobra.Command{
		Use:   "info",
		Short: "Show project attributes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			proj, err := a.client.GetProject(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(proj)
		},
	}

	xml := &cobra.Command{
		Use:   "xml",
		Short: "Export the project as CDISC ODM XML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := cmd.Flags()
			var in api.GetProjectXMLInput
			in.ReturnMetadataOnly, _ = f.GetBool("metadata-only")
			in.Records, _ = f.GetStringSlice("records")
			in.Fields, _ = f.GetStringSlice("fields")
			in.Events, _ = f.GetStringSlice("events")
			in.ExportSurveyFields, _ = f.GetBool("survey-fields")
			in.ExportDataAccessGroups, _ = f.GetBool("dags")
			in.FilterLogic, _ = f.GetString("filter")
			in.ExportFiles, _ = f.GetBool("files")
			doc, err := a.client.GetProjectXML(cmd.Context(), in)
			if err != nil {
				return err
			}
			return a.print(doc)
		},
	}
	xml.Flags().Bool("metadata-only", false, "Export the metadata without data")
	xml.Flags().StringSlice("records", nil, "Records to include")
	xml.Flags().StringSlice("fields", nil, "Fields to include")
	xml.Flags().StringSlice("events", nil, "Events to include")
	xml.Flags().Bool("survey-fields", false, "Include survey identifier and timestamp fields")
	xml.Flags().Bool("dags", false, "Include the data access group field")
	xml.Flags().String("filter", "", "Filter logic records must match")
	xml.Flags().Bool("files", false, "Embed uploaded files")

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a project from --data (needs a super API token) and print its token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			recs, err := loadRecords(cmd)
			if err != nil {
				return err
			}
			if len(recs) != 1 {
				return fmt.Errorf("project data must hold exactly one object, got %d", len(recs))
			}
			var odm string
			if path, _ := cmd.Flags().GetString("odm"); path != "" {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read ODM file: %w", err)
				}
				odm = string(data)
			}
			token, err := a.client.CreateProject(cmd.Context(), recs[0], odm)
			if err != nil {
				return err
			}
			return a.print(token)
		},
	}
	addDataFlags(create)
	create.Flags().String("odm", "", "Project XML file to build the project from")

	settings := &cobra.Command{
		Use:   "settings",
		Short: "Update project attributes from --data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			recs, err := loadRecords(cmd)
			if err != nil {
				return err
			}
			if len(recs) != 1 {
				return fmt.Errorf("project settings must hold exactly one object, got %d", len(recs))
			}
			return a.printCount(a.client.ImportProjectSettings(cmd.Context(), recs[0]))
		},
	}
	addDataFlags(settings)

	cmd.AddCommand(info, xml, create, settings)
	return cmd
}

func newMetadataCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "metadata", Short: "Export and import the data dictionary"}

	export := &cobra.Command{
		Use:   "export",
		Short: "Export the data dictionary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := parseFormat(cmd, "format")
			if err != nil {
				return err
			}
			fields, _ := cmd.Flags().GetStringSlice("fields")
			forms, _ := cmd.Flags().GetStringSlice("forms")
			res, err := a.client.GetMetadata(cmd.Context(), api.GetMetadataInput{Format: format, Fields: fields, Forms: forms})
			if err != nil {
				return err
			}
			return a.print(res)
		},
	}
	export.Flags().String("format", "csv", "Format requested: csv, json or xml")
	export.Flags().StringSlice("fields", nil, "Fields to export")
	export.Flags().StringSlice("forms", nil, "Instruments to export")

	imp := &cobra.Command{
		Use:   "import",
		Short: "Replace the data dictionary with --data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, format, err := loadData(cmd)
			if err != nil {
				return err
			}
			return a.printCount(a.client.ImportMetadata(cmd.Context(), api.ImportMetadataInput{Data: data, Format: format}))
		},
	}
	addDataFlags(imp)

	cmd.AddCommand(export, imp)
	return cmd
}

func newReportsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports REPORT_ID",
		Short: "Export a saved report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			format, err := parseFormat(cmd, "format")
			if err != nil {
				return err
			}
			in := api.GetReportInput{ReportID: args[0], Format: format}
			in.RawOrLabel, _ = f.GetString("raw-or-label")
			in.RawOrLabelHeaders, _ = f.GetString("raw-or-label-headers")
			in.ExportCheckboxLabel, _ = f.GetBool("checkbox-label")
			in.CSVDelimiter, _ = f.GetString("csv-delimiter")
			in.DecimalCharacter, _ = f.GetString("decimal-character")
			res, err := a.client.GetReport(cmd.Context(), in)
			if err != nil {
				return err
			}
			return a.print(res)
		},
	}
	f := cmd.Flags()
	f.String("format", "json", "Format requested: json, csv or xml")
	f.String("raw-or-label", "", "Export raw values or labels: raw or label")
	f.String("raw-or-label-headers", "", "Export raw or label column headers")
	f.Bool("checkbox-label", false, "Export checkbox labels instead of Checked/Unchecked")
	f.String("csv-delimiter", "", "CSV delimiter")
	f.String("decimal-character", "", "Decimal character")
	return cmd
}

func newLogsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Export the project log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := cmd.Flags()
			format, err := parseFormat(cmd, "format")
			if err != nil {
				return err
			}
			in := api.GetLogsInput{Format: format}
			in.LogType, _ = f.GetString("type")
			in.User, _ = f.GetString("user")
			in.Record, _ = f.GetString("record")
			in.DAG, _ = f.GetString("dag")
			if in.BeginTime, err = parseTimeFlag(cmd, "begin"); err != nil {
				return err
			}
			if in.EndTime, err = parseTimeFlag(cmd, "end"); err != nil {
				return err
			}
			res, err := a.client.GetLogs(cmd.Context(), in)
			if err != nil {
				return err
			}
			return a.print(res)
		},
	}
	f := cmd.Flags()
	f.String("format", "csv", "Format requested: csv, json or xml")
	f.String("type", "", "Log type, e.g. export, manage, user, record")
	f.String("user", "", "Only entries by this user")
	f.String("record", "", "Only entries about this record")
	f.String("dag", "", "Only entries in this data access group")
	f.String("begin", "", "Earliest time, YYYY-MM-DD HH:MM")
	f.String("end", "", "Latest time, YYYY-MM-DD HH:MM")
	return cmd
}

func parseTimeFlag(cmd *cobra.Command, name string) (time.Time, error) {
	val, _ := cmd.Flags().GetString(name)
	if val == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(timeFlagLayout, val, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s must look like %q: %w", name, timeFlagLayout, err)
	}
	return t, nil
}
