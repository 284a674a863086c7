package main

import (
	"github.com/spf13/cobra"

	"github.com/torosent/redcaplite/api"
	"github.com/torosent/redcaplite/redcap"
)

func newUsersCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "users", Short: "List, import and delete users"}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List users and their privileges",
			RunE: func(cmd *cobra.Command, _ []string) error {
				users, err := a.client.GetUsers(cmd.Context())
				if err != nil {
					return err
				}
				return a.print(users)
			},
		},
		importCommand("Add or update users from --data", func(cmd *cobra.Command) (int, error) {
			users, err := loadRecords(cmd)
			if err != nil {
				return 0, err
			}
			return a.client.ImportUsers(cmd.Context(), users)
		}, a),
		&cobra.Command{
			Use:   "delete USERNAME...",
			Short: "Remove users from the project",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.printCount(a.client.DeleteUsers(cmd.Context(), args))
			},
		},
	)
	return cmd
}

func newUserRolesCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "user-roles", Short: "List, import and delete user roles"}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List user roles",
			RunE: func(cmd *cobra.Command, _ []string) error {
				roles, err := a.client.GetUserRoles(cmd.Context())
				if err != nil {
					return err
				}
				return a.print(roles)
			},
		},
		importCommand("Add or update user roles from --data", func(cmd *cobra.Command) (int, error) {
			roles, err := loadRecords(cmd)
			if err != nil {
				return 0, err
			}
			return a.client.ImportUserRoles(cmd.Context(), roles)
		}, a),
		&cobra.Command{
			Use:   "delete UNIQUE_ROLE_NAME...",
			Short: "Delete user roles",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.printCount(a.client.DeleteUserRoles(cmd.Context(), args))
			},
		},
	)
	return cmd
}

func newRoleMappingsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "role-mappings", Short: "List and import user to role assignments"}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List user to role assignments",
			RunE: func(cmd *cobra.Command, _ []string) error {
				res, err := a.client.GetUserRoleMappings(cmd.Context())
				if err != nil {
					return err
				}
				return a.print(res)
			},
		},
		importCommand("Import user to role assignments from --data", func(cmd *cobra.Command) (int, error) {
			items, err := loadTyped[redcap.UserRoleMapping](cmd)
			if err != nil {
				return 0, err
			}
			return a.client.ImportUserRoleMappings(cmd.Context(), items)
		}, a),
	)
	return cmd
}

func surveyFlags(cmd *cobra.Command) {
	cmd.Flags().String("event", "", "Unique event name (longitudinal projects)")
	cmd.Flags().Int("repeat-instance", 1, "Repeat instance")
}

func surveyInput(cmd *cobra.Command, args []string) api.SurveyInput {
	in := api.SurveyInput{Record: args[0], Instrument: args[1]}
	in.Event, _ = cmd.Flags().GetString("event")
	in.RepeatInstance, _ = cmd.Flags().GetInt("repeat-instance")
	return in
}

func newSurveysCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "surveys", Short: "Survey links, return codes and participants"}

	link := &cobra.Command{
		Use:   "link RECORD INSTRUMENT",
		Short: "Print a participant's survey link",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.client.GetSurveyLink(cmd.Context(), surveyInput(cmd, args))
			if err != nil {
				return err
			}
			return a.print(res)
		},
	}
	surveyFlags(link)

	code := &cobra.Command{
		Use:   "return-code RECORD INSTRUMENT",
		Short: "Print a participant's survey return code",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.client.GetSurveyReturnCode(cmd.Context(), surveyInput(cmd, args))
			if err != nil {
				return err
			}
			return a.print(res)
		},
	}
	surveyFlags(code)

	queue := &cobra.Command{
		Use:   "queue-link RECORD",
		Short: "Print a record's survey queue link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.client.GetSurveyQueueLink(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.print(res)
		},
	}

	participants := &cobra.Command{
		Use:   "participants INSTRUMENT",
		Short: "List a survey's participants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseFormat(cmd, "format")
			if err != nil {
				return err
			}
			event, _ := cmd.Flags().GetString("event")
			res, err := a.client.GetParticipantList(cmd.Context(), api.ParticipantListInput{Instrument: args[0], Event: event, Format: format})
			if err != nil {
				return err
			}
			return a.print(res)
		},
	}
	participants.Flags().String("event", "", "Unique event name (longitudinal projects)")
	participants.Flags().String("format", "json", "Format requested: json, csv or xml")

	cmd.AddCommand(link, code, queue, participants)
	return cmd
}
