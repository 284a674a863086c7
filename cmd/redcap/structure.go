package main

import (
	"github.com/spf13/cobra"

	"github.com/torosent/redcaplite/redcap"
)

func newArmsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "arms", Short: "List, import and delete arms"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List arms",
		RunE: func(cmd *cobra.Command, _ []string) error {
			arms, _ := cmd.Flags().GetIntSlice("arms")
			res, err := a.client.GetArms(cmd.Context(), arms...)
			if err != nil {
				return err
			}
			return a.print(res)
		},
	}
	list.Flags().IntSlice("arms", nil, "Arm numbers to list (default all)")

	imp := &cobra.Command{
		Use:   "import",
		Short: "Import arms from --data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			arms, err := loadTyped[redcap.Arm](cmd)
			if err != nil {
				return err
			}
			override, _ := cmd.Flags().GetBool("override")
			return a.printCount(a.client.ImportArms(cmd.Context(), arms, override))
		},
	}
	addDataFlags(imp)
	imp.Flags().Bool("override", false, "Delete arms that are not in the data")

	del := &cobra.Command{
		Use:   "delete ARM_NUM...",
		Short: "Delete arms by number",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arms, err := parseInts(args)
			if err != nil {
				return err
			}
			return a.printCount(a.client.DeleteArms(cmd.Context(), arms))
		},
	}

	cmd.AddCommand(list, imp, del)
	return cmd
}

func newDAGsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "dags", Short: "List, import and delete data access groups"}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List data access groups",
			RunE: func(cmd *cobra.Command, _ []string) error {
				res, err := a.client.GetDAGs(cmd.Context())
				if err != nil {
					return err
				}
				return a.print(res)
			},
		},
		importCommand("Import data access groups from --data", func(cmd *cobra.Command) (int, error) {
			dags, err := loadTyped[redcap.DAG](cmd)
			if err != nil {
				return 0, err
			}
			return a.client.ImportDAGs(cmd.Context(), dags)
		}, a),
		&cobra.Command{
			Use:   "delete UNIQUE_GROUP_NAME...",
			Short: "Delete data access groups",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.printCount(a.client.DeleteDAGs(cmd.Context(), args))
			},
		},
	)
	return cmd
}

func newDAGMappingsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "dag-mappings", Short: "List and import user to data access group assignments"}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List user assignments",
			RunE: func(cmd *cobra.Command, _ []string) error {
				res, err := a.client.GetUserDAGMappings(cmd.Context())
				if err != nil {
					return err
				}
				return a.print(res)
			},
		},
		importCommand("Import user assignments from --data", func(cmd *cobra.Command) (int, error) {
			items, err := loadTyped[redcap.UserDAGMapping](cmd)
			if err != nil {
				return 0, err
			}
			return a.client.ImportUserDAGMappings(cmd.Context(), items)
		}, a),
	)
	return cmd
}

func newEventsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "events", Short: "List, import and delete events"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List events",
		RunE: func(cmd *cobra.Command, _ []string) error {
			arms, _ := cmd.Flags().GetIntSlice("arms")
			res, err := a.client.GetEvents(cmd.Context(), arms...)
			if err != nil {
				return err
			}
			return a.print(res)
		},
	}
	list.Flags().IntSlice("arms", nil, "Only list events of these arms")

	cmd.AddCommand(
		list,
		importCommand("Import events from --data", func(cmd *cobra.Command) (int, error) {
			events, err := loadTyped[redcap.Event](cmd)
			if err != nil {
				return 0, err
			}
			return a.client.ImportEvents(cmd.Context(), events)
		}, a),
		&cobra.Command{
			Use:   "delete UNIQUE_EVENT_NAME...",
			Short: "Delete events",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.printCount(a.client.DeleteEvents(cmd.Context(), args))
			},
		},
	)
	return cmd
}

func newFormEventMappingsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "form-event-mappings", Short: "List and import instrument to event assignments"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List instrument to event assignments",
		RunE: func(cmd *cobra.Command, _ []string) error {
			arms, _ := cmd.Flags().GetIntSlice("arms")
			res, err := a.client.GetFormEventMappings(cmd.Context(), arms...)
			if err != nil {
				return err
			}
			return a.print(res)
		},
	}
	list.Flags().IntSlice("arms", nil, "Only list assignments of these arms")

	cmd.AddCommand(
		list,
		importCommand("Import instrument to event assignments from --data", func(cmd *cobra.Command) (int, error) {
			items, err := loadTyped[redcap.FormEventMapping](cmd)
			if err != nil {
				return 0, err
			}
			return a.client.ImportFormEventMappings(cmd.Context(), items)
		}, a),
	)
	return cmd
}

func newFieldNamesCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "field-names [FIELD]",
		Short: "List export field names",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var field string
			if len(args) == 1 {
				field = args[0]
			}
			res, err := a.client.GetFieldNames(cmd.Context(), field)
			if err != nil {
				return err
			}
			return a.print(res)
		},
	}
	return cmd
}

func newInstrumentsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "instruments",
		Short: "List instruments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := a.client.GetInstruments(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(res)
		},
	}
}

func newRepeatingCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "repeating", Short: "List and import repeating instruments and events"}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List repeating instruments and events",
			RunE: func(cmd *cobra.Command, _ []string) error {
				res, err := a.client.GetRepeatingFormsEvents(cmd.Context())
				if err != nil {
					return err
				}
				return a.print(res)
			},
		},
		importCommand("Import repeating instruments and events from --data", func(cmd *cobra.Command) (int, error) {
			items, err := loadTyped[redcap.RepeatingFormEvent](cmd)
			if err != nil {
				return 0, err
			}
			return a.client.ImportRepeatingFormsEvents(cmd.Context(), items)
		}, a),
	)
	return cmd
}
