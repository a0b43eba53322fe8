package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/taleemtrack/taleemtrack-cli/internal/models"
	"github.com/taleemtrack/taleemtrack-cli/internal/tui"
	"github.com/taleemtrack/taleemtrack-cli/pkg/export"
)

var (
	sessionName    string
	sessionStart   string
	sessionEnd     string
	sessionCurrent bool

	deleteYes bool

	exportFormat string
	exportOut    string
)

// adminRoles are the roles allowed to mutate academic sessions.
var adminRoles = []models.UserRole{models.RoleSuperAdmin, models.RoleAdmin}

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage academic sessions",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all academic sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := initApp()
		if err != nil {
			return err
		}
		defer a.logger.Sync() //nolint:errcheck
		if err := a.requireAuth("sessions"); err != nil {
			return err
		}

		a.store.LoadSessions(context.Background())
		a.store.LoadCurrentSession(context.Background())
		if msg := a.store.ErrorMessage(); msg != "" {
			return fmt.Errorf("%s", msg)
		}

		printSessionTable(a.store.Sessions())
		if !a.store.HasCurrentSession() {
			fmt.Println("\nNo current session set.")
		}
		return nil
	},
}

var sessionsBrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse and manage sessions interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := initApp()
		if err != nil {
			return err
		}
		defer a.logger.Sync() //nolint:errcheck

		return tui.RunApp(a.authSvc, a.store)
	},
}

var sessionsCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the current academic session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := initApp()
		if err != nil {
			return err
		}
		defer a.logger.Sync() //nolint:errcheck
		if err := a.requireAuth("sessions"); err != nil {
			return err
		}

		a.store.LoadCurrentSession(context.Background())
		current := a.store.CurrentSession()
		if current == nil {
			fmt.Println("No current session set.")
			return nil
		}
		fmt.Printf("%s  (%s to %s)\n", current.Name, current.StartDate, current.EndDate)
		return nil
	},
}

var sessionsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an academic session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := initApp()
		if err != nil {
			return err
		}
		defer a.logger.Sync() //nolint:errcheck
		if err := requireAdmin(a); err != nil {
			return err
		}

		req, err := buildSessionRequest()
		if err != nil {
			return err
		}

		a.store.CreateSession(context.Background(), req)
		if msg := a.store.ErrorMessage(); msg != "" {
			return fmt.Errorf("%s", msg)
		}
		fmt.Printf("Created session %q.\n", req.Name)
		return nil
	},
}

var sessionsEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Update an academic session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := initApp()
		if err != nil {
			return err
		}
		defer a.logger.Sync() //nolint:errcheck
		if err := requireAdmin(a); err != nil {
			return err
		}

		id, err := parseSessionID(args[0])
		if err != nil {
			return err
		}
		req, err := buildSessionRequest()
		if err != nil {
			return err
		}

		a.store.UpdateSession(context.Background(), id, req)
		if msg := a.store.ErrorMessage(); msg != "" {
			return fmt.Errorf("%s", msg)
		}
		fmt.Printf("Updated session %d.\n", id)
		return nil
	},
}

var sessionsSetCurrentCmd = &cobra.Command{
	Use:   "set-current <id>",
	Short: "Flag a session as the current one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := initApp()
		if err != nil {
			return err
		}
		defer a.logger.Sync() //nolint:errcheck
		if err := requireAdmin(a); err != nil {
			return err
		}

		id, err := parseSessionID(args[0])
		if err != nil {
			return err
		}

		a.store.SetCurrentSession(context.Background(), id)
		if msg := a.store.ErrorMessage(); msg != "" {
			return fmt.Errorf("%s", msg)
		}
		current := a.store.CurrentSession()
		fmt.Printf("%q is now the current session.\n", current.Name)
		return nil
	},
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an academic session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := initApp()
		if err != nil {
			return err
		}
		defer a.logger.Sync() //nolint:errcheck
		if err := requireAdmin(a); err != nil {
			return err
		}

		id, err := parseSessionID(args[0])
		if err != nil {
			return err
		}

		if !deleteYes && !confirm(fmt.Sprintf("Delete session %d? This cannot be undone.", id)) {
			fmt.Println("Aborted.")
			return nil
		}

		a.store.DeleteSession(context.Background(), id)
		if msg := a.store.ErrorMessage(); msg != "" {
			return fmt.Errorf("%s", msg)
		}
		fmt.Printf("Deleted session %d.\n", id)
		return nil
	},
}

var sessionsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the session list to CSV or PDF",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := initApp()
		if err != nil {
			return err
		}
		defer a.logger.Sync() //nolint:errcheck
		if err := a.requireAuth("sessions"); err != nil {
			return err
		}

		a.store.LoadSessions(context.Background())
		if msg := a.store.ErrorMessage(); msg != "" {
			return fmt.Errorf("%s", msg)
		}

		dataset := export.SessionsDataset(a.store.Sessions())

		var rendered []byte
		switch exportFormat {
		case "csv":
			rendered, err = export.NewCSVExporter().Render(dataset)
		case "pdf":
			rendered, err = export.NewPDFExporter().Render(dataset)
		default:
			return fmt.Errorf("unsupported format %q: use csv or pdf", exportFormat)
		}
		if err != nil {
			return err
		}

		out := exportOut
		if out == "" {
			out = "academic-sessions." + exportFormat
		}
		if err := os.WriteFile(out, rendered, 0o644); err != nil {
			return err
		}
		fmt.Printf("Exported %d sessions to %s\n", a.store.SessionCount(), out)
		return nil
	},
}

// requireAdmin gates mutating commands on the admin roles, mirroring the
// role guard on the original admin routes.
func requireAdmin(a *app) error {
	decision := a.guard.CheckRoles("sessions", adminRoles...)
	if decision.Allowed {
		return nil
	}
	if decision.Redirect == "login" {
		return fmt.Errorf("not signed in or session expired: run `taleemtrack login` first")
	}
	return fmt.Errorf("your role does not allow managing academic sessions")
}

func buildSessionRequest() (models.SessionRequest, error) {
	var req models.SessionRequest

	start, err := models.ParseDate(sessionStart)
	if err != nil {
		return req, err
	}
	end, err := models.ParseDate(sessionEnd)
	if err != nil {
		return req, err
	}

	req = models.SessionRequest{
		Name:      strings.TrimSpace(sessionName),
		StartDate: start,
		EndDate:   end,
		IsCurrent: sessionCurrent,
	}
	if err := req.Validate(nil); err != nil {
		return req, err
	}
	return req, nil
}

func parseSessionID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid session id %q", raw)
	}
	return id, nil
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func printSessionTable(sessions []models.AcademicSession) {
	header := lipgloss.NewStyle().Bold(true)
	fmt.Println(header.Render(fmt.Sprintf("%-6s %-24s %-12s %-12s %s", "ID", "NAME", "START", "END", "CURRENT")))
	for _, s := range sessions {
		current := ""
		if s.IsCurrent {
			current = "yes"
		}
		fmt.Printf("%-6d %-24s %-12s %-12s %s\n", s.ID, s.Name, s.StartDate, s.EndDate, current)
	}
}

func init() {
	for _, cmd := range []*cobra.Command{sessionsCreateCmd, sessionsEditCmd} {
		cmd.Flags().StringVar(&sessionName, "name", "", "session name, e.g. 2024-2025")
		cmd.Flags().StringVar(&sessionStart, "start", "", "start date (YYYY-MM-DD)")
		cmd.Flags().StringVar(&sessionEnd, "end", "", "end date (YYYY-MM-DD)")
		cmd.Flags().BoolVar(&sessionCurrent, "current", false, "flag as the current session")
		_ = cmd.MarkFlagRequired("name")
		_ = cmd.MarkFlagRequired("start")
		_ = cmd.MarkFlagRequired("end")
	}

	sessionsDeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")

	sessionsExportCmd.Flags().StringVar(&exportFormat, "format", "csv", "export format: csv or pdf")
	sessionsExportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file path")

	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsBrowseCmd)
	sessionsCmd.AddCommand(sessionsCurrentCmd)
	sessionsCmd.AddCommand(sessionsCreateCmd)
	sessionsCmd.AddCommand(sessionsEditCmd)
	sessionsCmd.AddCommand(sessionsSetCurrentCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)
	sessionsCmd.AddCommand(sessionsExportCmd)
}
