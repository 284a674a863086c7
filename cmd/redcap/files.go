package main

import (
	"github.com/spf13/cobra"

	"github.com/torosent/redcaplite/api"
)

// fileFlags registers the flags that address a file field.
func fileFlags(cmd *cobra.Command) {
	cmd.Flags().String("event", "", "Unique event name (longitudinal projects)")
	cmd.Flags().Int("repeat-instance", 1, "Repeat instance")
}

func fileInput(cmd *cobra.Command, args []string) api.FileInput {
	in := api.FileInput{Record: args[0], Field: args[1]}
	in.Event, _ = cmd.Flags().GetString("event")
	in.RepeatInstance, _ = cmd.Flags().GetInt("repeat-instance")
	return in
}

func newFilesCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "files", Short: "Download, upload and delete files in record fields"}

	export := &cobra.Command{
		Use:   "export RECORD FIELD",
		Short: "Download a file; --out may name a file or a directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest, _ := cmd.Flags().GetString("out")
			path, err := a.client.ExportFile(cmd.Context(), fileInput(cmd, args), dest)
			if err != nil {
				return err
			}
			return a.print(map[string]string{"path": path})
		},
	}
	fileFlags(export)
	export.Flags().String("out", "", "Destination file or directory (default the current directory)")

	imp := &cobra.Command{
		Use:   "import RECORD FIELD FILE",
		Short: "Upload a file into a record field",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.ImportFile(cmd.Context(), fileInput(cmd, args), args[2]); err != nil {
				return err
			}
			return a.print(map[string]string{"uploaded": args[2]})
		},
	}
	fileFlags(imp)

	del := &cobra.Command{
		Use:   "delete RECORD FIELD",
		Short: "Delete the file in a record field",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.DeleteFile(cmd.Context(), fileInput(cmd, args)); err != nil {
				return err
			}
			return a.print(map[string]string{"deleted": args[1]})
		},
	}
	fileFlags(del)

	cmd.AddCommand(export, imp, del)
	return cmd
}

func newRepoCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "repo", Short: "Work with the file repository"}

	list := &cobra.Command{
		Use:   "list [FOLDER_ID]",
		Short: "List a folder, the top level by default",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var folder string
			if len(args) == 1 {
				folder = args[0]
			}
			items, err := a.client.ListFileRepository(cmd.Context(), folder)
			if err != nil {
				return err
			}
			return a.print(items)
		},
	}

	mkdir := &cobra.Command{
		Use:   "mkdir NAME",
		Short: "Create a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := api.CreateFolderInput{Name: args[0]}
			in.FolderID, _ = cmd.Flags().GetString("parent")
			in.DAGID, _ = cmd.Flags().GetString("dag-id")
			in.RoleID, _ = cmd.Flags().GetString("role-id")
			id, err := a.client.CreateFolder(cmd.Context(), in)
			if err != nil {
				return err
			}
			return a.print(map[string]int{"folder_id": int(id)})
		},
	}
	mkdir.Flags().String("parent", "", "Parent folder id (default the top level)")
	mkdir.Flags().String("dag-id", "", "Restrict the folder to a data access group")
	mkdir.Flags().String("role-id", "", "Restrict the folder to a user role")

	export := &cobra.Command{
		Use:   "export DOC_ID",
		Short: "Download a repository file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest, _ := cmd.Flags().GetString("out")
			path, err := a.client.ExportFileRepository(cmd.Context(), args[0], dest)
			if err != nil {
				return err
			}
			return a.print(map[string]string{"path": path})
		},
	}
	export.Flags().String("out", "", "Destination file or directory (default the current directory)")

	imp := &cobra.Command{
		Use:   "import FILE",
		Short: "Upload a file into the repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder, _ := cmd.Flags().GetString("folder")
			if err := a.client.ImportFileRepository(cmd.Context(), args[0], folder); err != nil {
				return err
			}
			return a.print(map[string]string{"uploaded": args[0]})
		},
	}
	imp.Flags().String("folder", "", "Destination folder id (default the top level)")

	del := &cobra.Command{
		Use:   "delete DOC_ID",
		Short: "Delete a repository file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.DeleteFileRepository(cmd.Context(), args[0]); err != nil {
				return err
			}
			return a.print(map[string]string{"deleted": args[0]})
		},
	}

	cmd.AddCommand(list, mkdir, export, imp, del)
	return cmd
}

func newPDFCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pdf",
		Short: "Download instrument PDFs, blank or filled",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := cmd.Flags()
			var in api.ExportPDFInput
			in.Record, _ = f.GetString("record")
			in.Event, _ = f.GetString("event")
			in.Instrument, _ = f.GetString("instrument")
			in.RepeatInstance, _ = f.GetInt("repeat-instance")
			in.AllRecords, _ = f.GetBool("all-records")
			in.CompactDisplay, _ = f.GetBool("compact")
			dest, _ := f.GetString("out")
			path, err := a.client.ExportPDF(cmd.Context(), in, dest)
			if err != nil {
				return err
			}
			return a.print(map[string]string{"path": path})
		},
	}
	f := cmd.Flags()
	f.String("record", "", "Record to fill the PDF with (default blank)")
	f.String("event", "", "Unique event name")
	f.String("instrument", "", "Instrument (default all)")
	f.Int("repeat-instance", 0, "Repeat instance")
	f.Bool("all-records", false, "Export every record")
	f.Bool("compact", false, "Compact display")
	f.String("out", "", "Destination file or directory (default the current directory)")
	return cmd
}
