package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/userkeeper/internal/client/client"
	"github.com/dmitrijs2005/userkeeper/internal/client/models"
)

const defaultListLimit = 25

var errUsage = errors.New("usage")

func (a *App) Ping(ctx context.Context) error {
	if err := a.api.Ping(ctx); err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			a.setMode(ctx, ModeOffline)
		}
		return err
	}
	a.setMode(ctx, ModeOnline)
	fmt.Fprintln(a.out, "pong")
	return nil
}

// Me shows the account of the logged in user.
func (a *App) Me(ctx context.Context) error {
	session := a.api.Session()
	if session == nil {
		return client.ErrNotLoggedIn
	}
	return a.Show(ctx, []string{session.PublicID})
}

func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: show <id>", errUsage)
	}

	user, err := a.api.GetUser(ctx, args[0])
	if err != nil {
		return err
	}
	a.printUser(user)
	return nil
}

// List prints one page of users. Page numbers start at 1; 0 is the same as 1.
func (a *App) List(ctx context.Context, args []string) error {
	page, limit := 1, defaultListLimit

	if len(args) > 2 {
		return fmt.Errorf("%w: list [page] [limit]", errUsage)
	}
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("%w: page must be an integer", errUsage)
		}
		page = n
	}
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("%w: limit must be an integer", errUsage)
		}
		limit = n
	}

	users, err := a.api.ListUsers(ctx, page, limit)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		fmt.Fprintln(a.out, "No users")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEMAIL\tFIRST NAME\tLAST NAME")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", u.ID, u.Email, u.FirstName, u.LastName)
	}
	return tw.Flush()
}

// Update changes first and last name. Without an id it targets the logged
// in user. An empty answer keeps the current value.
func (a *App) Update(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("%w: update [id]", errUsage)
	}

	session := a.api.Session()
	if session == nil {
		return client.ErrNotLoggedIn
	}
	id := session.PublicID
	if len(args) == 1 {
		id = args[0]
	}

	firstName, err := getSimpleText(a.reader, "New first name (empty keeps current)", a.out)
	if err != nil {
		return err
	}
	lastName, err := getSimpleText(a.reader, "New last name (empty keeps current)", a.out)
	if err != nil {
		return err
	}

	user, err := a.api.UpdateUser(ctx, id, firstName, lastName)
	if err != nil {
		return err
	}
	a.printUser(user)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: delete <id>", errUsage)
	}

	if err := a.api.DeleteUser(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted %s\n", args[0])

	if session := a.api.Session(); session != nil && session.PublicID == args[0] {
		a.api.Logout()
		fmt.Fprintln(a.out, "Your account is gone, logged out")
	}
	return nil
}

func (a *App) printUser(u *models.User) {
	fmt.Fprintf(a.out, "ID:         %s\n", u.ID)
	fmt.Fprintf(a.out, "Email:      %s\n", u.Email)
	fmt.Fprintf(a.out, "First name: %s\n", u.FirstName)
	fmt.Fprintf(a.out, "Last name:  %s\n", u.LastName)
}
