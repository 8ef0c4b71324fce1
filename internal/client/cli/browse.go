package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sambulosenda/glamfric-mobile/internal/client/client"
	"github.com/sambulosenda/glamfric-mobile/internal/client/guard"
	"github.com/sambulosenda/glamfric-mobile/internal/client/models"
	"github.com/sambulosenda/glamfric-mobile/internal/common"
)

const searchPageSize = 10

// protectedScreens need a session to be shown at all, keyed by path with
// the message shown to anonymous users.
var protectedScreens = map[string]string{
	"/profile":  "Sign in to view and manage your account",
	"/bookings": "Sign in to see your bookings",
}

func businessPath(id string) string {
	return "/business/" + id
}

// Search runs a business search. Tokens of the form category:<name> and
// page:<n> filter the results; the rest is the search text.
func (a *App) Search(ctx context.Context, args []string) error {
	input := models.SearchBusinessesInput{Limit: searchPageSize}

	var words []string
	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "category:"):
			input.Category = strings.TrimPrefix(arg, "category:")
		case strings.HasPrefix(arg, "page:"):
			page, err := strconv.Atoi(strings.TrimPrefix(arg, "page:"))
			if err != nil || page < 1 {
				a.printf("Error: invalid page %q\n", arg)
				return fmt.Errorf("invalid page %q", arg)
			}
			input.Offset = (page - 1) * searchPageSize
		default:
			words = append(words, arg)
		}
	}
	input.Query = strings.Join(words, " ")

	res, err := a.client.SearchBusinesses(ctx, input)
	if err != nil {
		a.printSearchError(ctx, err)
		return err
	}

	if len(res.Businesses) == 0 {
		a.printf("No businesses found.\n")
		return nil
	}

	compact := a.prefs.State().CompactMode
	for _, b := range res.Businesses {
		if compact {
			a.printf("%s  %s (%s)\n", b.ID, b.BusinessName, b.Category)
			continue
		}
		a.printBusiness(b)
	}

	a.printf("Showing %d-%d of %d.\n", input.Offset+1, input.Offset+len(res.Businesses), res.Total)
	if res.HasMore {
		a.printf("Add page:%d for more.\n", input.Offset/searchPageSize+2)
	}
	return nil
}

func (a *App) printBusiness(b models.Business) {
	name := b.BusinessName
	if b.IsVerified {
		name += " ✓"
	}
	a.printf("%s  %s\n", b.ID, name)

	details := []string{b.Category}
	if b.City != nil {
		details = append(details, *b.City)
	}
	if b.Rating != nil {
		details = append(details, fmt.Sprintf("★ %.1f (%d reviews)", *b.Rating, b.TotalReviews))
	} else {
		details = append(details, "no reviews yet")
	}
	a.printf("    %s\n", strings.Join(details, " · "))
}

func (a *App) printSearchError(ctx context.Context, err error) {
	a.logger.Warn(ctx, "search failed", "error", err)

	var serverErr *client.ServerError
	switch {
	case errors.Is(err, common.ErrUnavailable):
		a.printf("The service is unreachable. Check your connection and try again.\n")
	case errors.As(err, &serverErr):
		a.printf("Error: %s\n", serverErr.Message)
	default:
		a.printf("Search failed. Please try again.\n")
	}
}

// Open navigates to a screen. Protected screens send an anonymous user
// straight to the login route.
func (a *App) Open(_ context.Context, args []string) error {
	if len(args) == 0 {
		a.printf("Current screen: %s\n", a.shell.current())
		return nil
	}

	path := args[0]
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	msg, protected := protectedScreens[path]
	if !protected {
		a.shell.Navigate(path)
		return nil
	}

	guard.RequireAuth(a.auth, func() { a.shell.Navigate(path) }, guard.Options{
		Message:         msg,
		CurrentPath:     path,
		RedirectToLogin: true,
	}, a.shell)
	return nil
}

// Book starts a booking with a business. Anonymous users get a sign-in prompt
// and land back on the business screen once they sign in.
func (a *App) Book(_ context.Context, args []string) error {
	if len(args) == 0 {
		a.printf("Usage: book <business id>\n")
		return errors.New("missing business id")
	}
	id := args[0]

	guard.RequireAuth(a.auth, func() {
		a.shell.Navigate(businessPath(id) + "/book")
		a.printf("Pick a service and time to complete your booking.\n")
	}, guard.Options{
		Message:     "Sign in to book an appointment",
		ReturnPath:  businessPath(id),
		CurrentPath: a.shell.current(),
	}, a.shell)
	return nil
}
