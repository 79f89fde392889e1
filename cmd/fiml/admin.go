package main

import (
	"context"
	"flag"
	"fmt"
	"os"
)

func adminUsage() {
	fmt.Fprintf(os.Stderr, `fiml admin subcommands:
  dashboard
  users       [-page N] [-limit N] [-filter active|inactive]
  user        -id <id>
  user-status -id <id> -active true|false
  user-rm     -id <id>
  movies      [-page N] [-limit N]
  movie-add   -title T -director D -year Y [...]
  movie-edit  -id <id> [...]
  movie-rm    -id <id>
  reviews     [-filter pending|approved]
  approve     -id <id>
  review-rm   -id <id>
  genres
  genre-add   -name N
  genre-edit  -id <id> -name N
  genre-rm    -id <id>
`)
	os.Exit(2)
}

// cmdAdmin dispatches the /api/admin namespace. The server enforces the
// admin role; a plain user just gets the envelope error back.
func cmdAdmin(ctx context.Context, a *app, args []string) {
	if len(args) < 1 {
		adminUsage()
	}
	sub := args[0]
	rest := args[1:]

	switch sub {

	case "dashboard":
		d, err := a.admin.Dashboard(ctx)
		if err != nil {
			fail(err)
		}
		printJSON(d)

	case "users":
		fs := flag.NewFlagSet("admin users", flag.ExitOnError)
		page := fs.Int("page", 1, "page number")
		limit := fs.Int("limit", 20, "page size")
		filter := fs.String("filter", "", "status filter")
		_ = fs.Parse(rest)
		out, err := a.admin.Users(ctx, *page, *limit, *filter)
		if err != nil {
			fail(err)
		}
		printJSON(out)

	case "user":
		fs := flag.NewFlagSet("admin user", flag.ExitOnError)
		id := fs.Int("id", 0, "user id")
		_ = fs.Parse(rest)
		if *id == 0 {
			fail(fmt.Errorf("need -id"))
		}
		u, err := a.admin.User(ctx, *id)
		if err != nil {
			fail(err)
		}
		printJSON(u)

	case "user-status":
		fs := flag.NewFlagSet("admin user-status", flag.ExitOnError)
		id := fs.Int("id", 0, "user id")
		active := fs.Bool("active", true, "target status")
		_ = fs.Parse(rest)
		if *id == 0 {
			fail(fmt.Errorf("need -id"))
		}
		if err := a.admin.SetUserStatus(ctx, *id, *active); err != nil {
			fail(err)
		}
		fmt.Println("ok")

	case "user-rm":
		fs := flag.NewFlagSet("admin user-rm", flag.ExitOnError)
		id := fs.Int("id", 0, "user id")
		_ = fs.Parse(rest)
		if *id == 0 {
			fail(fmt.Errorf("need -id"))
		}
		if err := a.admin.DeleteUser(ctx, *id); err != nil {
			fail(err)
		}
		fmt.Println("ok")

	case "movies":
		fs := flag.NewFlagSet("admin movies", flag.ExitOnError)
		page := fs.Int("page", 1, "page number")
		limit := fs.Int("limit", 20, "page size")
		_ = fs.Parse(rest)
		out, err := a.admin.Movies(ctx, *page, *limit)
		if err != nil {
			fail(err)
		}
		printJSON(out)

	case "movie-add":
		fs := flag.NewFlagSet("admin movie-add", flag.ExitOnError)
		in := movieInputFlags(fs)
		_ = fs.Parse(rest)
		if in.Title == "" || in.Director == "" || in.Year == 0 {
			fail(fmt.Errorf("need -title, -director and -year"))
		}
		movie, err := a.admin.CreateMovie(ctx, *in)
		if err != nil {
			fail(err)
		}
		printJSON(movie)

	case "movie-edit":
		fs := flag.NewFlagSet("admin movie-edit", flag.ExitOnError)
		id := fs.Int("id", 0, "movie id")
		in := movieInputFlags(fs)
		_ = fs.Parse(rest)
		if *id == 0 {
			fail(fmt.Errorf("need -id"))
		}
		if err := a.admin.UpdateMovie(ctx, *id, *in); err != nil {
			fail(err)
		}
		fmt.Println("ok")

	case "movie-rm":
		fs := flag.NewFlagSet("admin movie-rm", flag.ExitOnError)
		id := fs.Int("id", 0, "movie id")
		_ = fs.Parse(rest)
		if *id == 0 {
			fail(fmt.Errorf("need -id"))
		}
		if err := a.admin.DeleteMovie(ctx, *id); err != nil {
			fail(err)
		}
		fmt.Println("ok")

	case "reviews":
		fs := flag.NewFlagSet("admin reviews", flag.ExitOnError)
		filter := fs.String("filter", "", "pending|approved, empty for all")
		_ = fs.Parse(rest)
		out, err := a.admin.Reviews(ctx, *filter)
		if err != nil {
			fail(err)
		}
		printJSON(out)

	case "approve":
		fs := flag.NewFlagSet("admin approve", flag.ExitOnError)
		id := fs.Int("id", 0, "review id")
		_ = fs.Parse(rest)
		if *id == 0 {
			fail(fmt.Errorf("need -id"))
		}
		if err := a.admin.ApproveReview(ctx, *id); err != nil {
			fail(err)
		}
		fmt.Println("ok")

	case "review-rm":
		fs := flag.NewFlagSet("admin review-rm", flag.ExitOnError)
		id := fs.Int("id", 0, "review id")
		_ = fs.Parse(rest)
		if *id == 0 {
			fail(fmt.Errorf("need -id"))
		}
		if err := a.admin.DeleteReview(ctx, *id); err != nil {
			fail(err)
		}
		fmt.Println("ok")

	case "genres":
		genres, err := a.admin.Genres(ctx)
		if err != nil {
			fail(err)
		}
		printJSON(genres)

	case "genre-add":
		fs := flag.NewFlagSet("admin genre-add", flag.ExitOnError)
		name := fs.String("name", "", "genre name")
		_ = fs.Parse(rest)
		if *name == "" {
			fail(fmt.Errorf("need -name"))
		}
		g, err := a.admin.CreateGenre(ctx, *name)
		if err != nil {
			fail(err)
		}
		printJSON(g)

	case "genre-edit":
		fs := flag.NewFlagSet("admin genre-edit", flag.ExitOnError)
		id := fs.Int("id", 0, "genre id")
		name := fs.String("name", "", "genre name")
		_ = fs.Parse(rest)
		if *id == 0 || *name == "" {
			fail(fmt.Errorf("need -id and -name"))
		}
		if err := a.admin.UpdateGenre(ctx, *id, *name); err != nil {
			fail(err)
		}
		fmt.Println("ok")

	case "genre-rm":
		fs := flag.NewFlagSet("admin genre-rm", flag.ExitOnError)
		id := fs.Int("id", 0, "genre id")
		_ = fs.Parse(rest)
		if *id == 0 {
			fail(fmt.Errorf("need -id"))
		}
		if err := a.admin.DeleteGenre(ctx, *id); err != nil {
			fail(err)
		}
		fmt.Println("ok")

	default:
		adminUsage()
	}
}
