package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"sheenclassics/internal/config"
	"sheenclassics/internal/db"
	"sheenclassics/internal/logger"
	"sheenclassics/internal/user"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
)

// Accounts is the part of the user service the tool drives.
type Accounts interface {
	CreateAdmin(ctx context.Context, input user.RegisterInput) (*user.User, error)
	List(ctx context.Context) ([]*user.User, error)
}

const usage = `usage:
  admintool create -name NAME -email EMAIL -password PASSWORD
  admintool list`

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	svc := user.NewService(user.NewRepository(database))
	if err := run(context.Background(), os.Args[1:], svc, os.Stdout); err != nil {
		logger.L().Error("admintool failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, accounts Accounts, out io.Writer) error {
	if len(args) == 0 {
		return errors.New(usage)
	}

	switch args[0] {
	case "create":
		return createAdmin(ctx, args[1:], accounts, out)
	case "list":
		return listUsers(ctx, accounts, out)
	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
}

func createAdmin(ctx context.Context, args []string, accounts Accounts, out io.Writer) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "login email")
	password := fs.String("password", "", "initial password")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "parse create flags")
	}

	u, err := accounts.CreateAdmin(ctx, user.RegisterInput{
		Name:     *name,
		Email:    *email,
		Password: *password,
	})
	if errors.Is(err, user.ErrEmailExists) {
		return errors.New("user with this email already exists")
	}
	if err != nil {
		return errors.Wrap(err, "create admin")
	}

	fmt.Fprintf(out, "Admin user created: id=%d email=%s\n", u.ID, u.Email)
	return nil
}

func listUsers(ctx context.Context, accounts Accounts, out io.Writer) error {
	users, err := accounts.List(ctx)
	if err != nil {
		return errors.Wrap(err, "list users")
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tCREATED")
	for _, u := range users {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role, u.CreatedAt.Format("2006-01-02"))
	}
	return w.Flush()
}
