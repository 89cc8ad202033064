package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bft-labs/distclient/internal/domain"
	"github.com/bft-labs/distclient/internal/export"
	"github.com/bft-labs/distclient/internal/query"
)

func newLoginCommand(a *app) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv("DISTCLIENT_PASSWORD")
			}
			if password == "" {
				fmt.Fprint(cmd.ErrOrStderr(), "password: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}
			if err := a.client.Login(cmd.Context(), email, password); err != nil {
				return errors.New(loginMessage(err))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged in")
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (default: $DISTCLIENT_PASSWORD or prompt)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

// loginMessage names the rejection reason instead of asking to log in again.
// Server faults behind a rejection are appended.
func loginMessage(err error) string {
	var aerr *domain.AuthError
	if !errors.As(err, &aerr) {
		return query.ErrorMessage(err)
	}
	switch aerr.Reason {
	case domain.InvalidCredentials, domain.AccountDisabled:
		msg := "login failed: " + aerr.Reason.String()
		var herr *domain.HTTPError
		if errors.As(err, &herr) && herr.StatusCode >= 500 {
			msg += " (" + herr.Error() + ")"
		}
		return msg
	default:
		return query.ErrorMessage(err)
	}
}

func newLogoutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the token and clear the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func newStatusCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether a usable session is stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.client.Status(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), st)
			return nil
		},
	}
}

func newWhoamiCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the account behind the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.client.Me(cmd.Context())
			if err != nil {
				return errors.New(query.ErrorMessage(err))
			}
			return a.output.render(cmd.OutOrStdout(), u, []export.Table{userTable(u)})
		},
	}
}

func newWatchCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print login state changes made by any process until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			cancel := a.client.Session().LoggedIn().Subscribe(func(loggedIn bool) {
				if loggedIn {
					fmt.Fprintln(out, "logged in")
				} else {
					fmt.Fprintln(out, "logged out")
				}
			})
			defer cancel()
			return a.client.WatchSession(cmd.Context())
		},
	}
}

func newDashboardCommand(a *app) *cobra.Command {
	var period, start, end string
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show sales totals and recent operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := domain.DashboardQuery{Period: domain.Period(period)}
			var err error
			if q.StartDate, err = parseDateFlag("start", start); err != nil {
				return err
			}
			if q.EndDate, err = parseDateFlag("end", end); err != nil {
				return err
			}
			if q.Period == "" && !q.HasRange() {
				q.Period = domain.PeriodWeek
			}
			st := a.client.Dashboard.Execute(cmd.Context(), q)
			return report(a, cmd, st, export.DashboardTables)
		},
	}
	cmd.Flags().StringVar(&period, "period", "", "7d, 3m, 1y or custom (default 7d without dates)")
	cmd.Flags().StringVar(&start, "start", "", "range start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "range end date (YYYY-MM-DD)")
	return cmd
}

func cursorFlags(cmd *cobra.Command, c *domain.Cursor) {
	cmd.Flags().IntVar(&c.Page, "page", 1, "page number (1-based)")
	cmd.Flags().IntVar(&c.Limit, "limit", domain.DefaultLimit, fmt.Sprintf("rows per page (max %d)", domain.MaxLimit))
}

func newPartnersCommand(a *app) *cobra.Command {
	var q domain.PartnerQuery
	cmd := &cobra.Command{
		Use:   "partners",
		Short: "Search partners",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := a.client.Partners.Execute(cmd.Context(), q)
			return report(a, cmd, st, single(export.PartnersTable))
		},
	}
	cursorFlags(cmd, &q.Cursor)
	cmd.Flags().StringVar(&q.Company, "company", "", "company name contains")
	cmd.Flags().StringVar(&q.MOL, "mol", "", "responsible person contains")
	cmd.Flags().StringVar(&q.Phone, "phone", "", "phone contains")
	cmd.Flags().StringVar(&q.TaxNo, "tax-no", "", "tax number contains")
	return cmd
}

func newProductsCommand(a *app) *cobra.Command {
	var q domain.ProductQuery
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Search products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := a.client.Products.Execute(cmd.Context(), q)
			return report(a, cmd, st, single(export.ProductsTable))
		},
	}
	cursorFlags(cmd, &q.Cursor)
	cmd.Flags().StringVar(&q.Name, "name", "", "name contains")
	cmd.Flags().StringVar(&q.Code, "code", "", "code contains")
	cmd.Flags().StringVar(&q.Barcode, "barcode", "", "barcode contains")
	return cmd
}

func newOperationsCommand(a *app) *cobra.Command {
	var q domain.OperationQuery
	var start, end string
	cmd := &cobra.Command{
		Use:   "operations",
		Short: "Search operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if q.StartDate, err = parseDateFlag("start", start); err != nil {
				return err
			}
			if q.EndDate, err = parseDateFlag("end", end); err != nil {
				return err
			}
			st := a.client.Operations.Execute(cmd.Context(), q)
			return report(a, cmd, st, single(export.OperationsTable))
		},
	}
	cursorFlags(cmd, &q.Cursor)
	cmd.Flags().StringVar(&q.PartnerName, "partner", "", "partner name contains")
	cmd.Flags().StringVar(&q.GoodName, "good", "", "good name contains")
	cmd.Flags().StringVar(&q.OperationName, "type", "", "operation name contains")
	cmd.Flags().StringVar(&start, "start", "", "from date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "to date (YYYY-MM-DD)")
	return cmd
}

func newOperationCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "operation <id>",
		Short: "Show one operation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid operation id %q", args[0])
			}
			st := a.client.Operation.Execute(cmd.Context(), id)
			return report(a, cmd, st, single(export.OperationDetailTable))
		},
	}
}

func parseDateFlag(name, value string) (domain.Date, error) {
	if value == "" {
		return domain.Date{}, nil
	}
	d, err := domain.ParseDate(value)
	if err != nil {
		return domain.Date{}, fmt.Errorf("--%s: %w", name, err)
	}
	return d, nil
}

func single[R any](fn func(R) export.Table) func(R) []export.Table {
	return func(r R) []export.Table { return []export.Table{fn(r)} }
}

// report prints a terminal query state. Error states become the command error.
func report[R any](a *app, cmd *cobra.Command, st query.State[R], tables func(R) []export.Table) error {
	switch st.Status {
	case query.StatusSuccess:
		return a.output.render(cmd.OutOrStdout(), st.Data, tables(st.Data))
	case query.StatusEmpty:
		fmt.Fprintln(cmd.OutOrStdout(), "no results")
		return nil
	case query.StatusError:
		return errors.New(st.Message())
	default:
		return fmt.Errorf("query ended in %s state", st.Status)
	}
}

func userTable(u domain.User) export.Table {
	return export.Table{
		Name:   "User",
		Header: []string{"Field", "Value"},
		Rows: [][]any{
			{"ID", u.ID},
			{"Name", u.FullName()},
			{"Username", u.Username},
			{"Email", u.Email},
			{"Superuser", strconv.FormatBool(u.IsSuperuser)},
			{"Active", strconv.FormatBool(u.IsActive)},
		},
	}
}
