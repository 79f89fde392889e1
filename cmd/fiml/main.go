// Command fiml is a CLI client for a movie-catalog/review service.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/lari1230/fiml/internal/api"
	"github.com/lari1230/fiml/internal/auth"
	"github.com/lari1230/fiml/internal/client"
	"github.com/lari1230/fiml/internal/config"
	"github.com/lari1230/fiml/internal/model"
	"github.com/lari1230/fiml/internal/notify"
	"github.com/lari1230/fiml/internal/session"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// app bundles the wired components every command works with.
type app struct {
	cfg     config.Config
	gw      *api.Client
	sess    *session.Store
	auth    *auth.Service
	movies  *client.Movies
	reviews *client.Reviews
	genres  *client.Genres
	admin   *client.Admin
}

func newApp(cfg config.Config, log *zap.Logger) (*app, error) {
	gw, err := api.New(cfg.BaseURL, api.Options{
		CookiePath: filepath.Join(cfg.DataDir, "cookies.json"),
		Insecure:   cfg.Insecure,
		Logger:     log,
	})
	if err != nil {
		return nil, err
	}
	sess := session.NewStore(session.NewFileBackend(cfg.DataDir))
	n := &notify.Writer{W: os.Stderr}
	return &app{
		cfg:     cfg,
		gw:      gw,
		sess:    sess,
		auth:    auth.NewService(gw, sess, n, log),
		movies:  client.NewMovies(gw, log),
		reviews: client.NewReviews(gw, log),
		genres:  client.NewGenres(gw, log),
		admin:   client.NewAdmin(gw, log),
	}, nil
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func usage() {
	fmt.Fprintf(os.Stderr, `fiml CLI
Usage:
  fiml [-base URL] [-timeout dur] [-insecure] [-v] <cmd> [args]

Commands:
  version
  register    -u <username> -e <email> -p <password>
  login       -e <email> -p <password>
  logout
  whoami      [-cached]
  profile     [-u <username>] [-e <email>]
  passwd      -old <password> -new <password>
  movies      [-page N] [-limit N] [-sort K] [-order asc|desc]
              [-year-from Y] [-year-to Y] [-genre G] [-q text]
  movie       -id <id>
  search      -q <text>
  top         [-limit N] [-period P] [-min-votes N] [-genre G]
  genres
  reviews     -movie <id>
  my-reviews
  review-add  -movie <id> -rating 1..10 [-comment text]
  review-edit -id <id> -rating 1..10 [-comment text]
  review-rm   -id <id>
  movie-add   -title T -director D -year Y [...]
  movie-edit  -id <id> [...]
  movie-rm    -id <id>
  settings    -key system|user [-set <file|->]
  admin       <subcommand> [args]   (see 'fiml admin')
`)
	os.Exit(2)
}

// main parses global flags, wires the components and dispatches subcommands.
func main() {
	cfg := config.Load()

	base := flag.String("base", cfg.BaseURL, "server base URL")
	timeout := flag.Duration("timeout", cfg.Timeout, "command deadline")
	insecure := flag.Bool("insecure", cfg.Insecure, "skip cert verify (dev)")
	verbose := flag.Bool("v", false, "log request diagnostics to stderr")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}
	cmd := flag.Arg(0)
	args := flag.Args()[1:]

	cfg.BaseURL = *base
	cfg.Timeout = *timeout
	cfg.Insecure = *insecure

	log := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err == nil {
			log = l
		}
	}
	defer func() { _ = log.Sync() }()

	a, err := newApp(cfg, log)
	if err != nil {
		fail(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	switch cmd {

	case "version":
		fmt.Printf("fiml %s (%s)\n", version, buildDate)

	case "register":
		fs := flag.NewFlagSet("register", flag.ExitOnError)
		u := fs.String("u", "", "username")
		e := fs.String("e", "", "email")
		p := fs.String("p", "", "password")
		_ = fs.Parse(args)
		if *u == "" || *e == "" || *p == "" {
			fail(fmt.Errorf("need -u, -e and -p"))
		}
		user := a.auth.Register(ctx, *u, *e, *p)
		if user == nil {
			os.Exit(1)
		}
		printJSON(user)

	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		e := fs.String("e", "", "email")
		p := fs.String("p", "", "password")
		_ = fs.Parse(args)
		if *e == "" || *p == "" {
			fail(fmt.Errorf("need -e and -p"))
		}
		user := a.auth.Login(ctx, *e, *p)
		if user == nil {
			os.Exit(1)
		}
		printJSON(user)

	case "logout":
		if !a.auth.Logout(ctx) {
			os.Exit(1)
		}

	case "whoami":
		fs := flag.NewFlagSet("whoami", flag.ExitOnError)
		cached := fs.Bool("cached", false, "use the local cache, skip the server round trip")
		_ = fs.Parse(args)
		var user *model.SessionUser
		if *cached {
			user = a.sess.Get()
		} else {
			user = a.auth.CheckAuth(ctx)
		}
		if user == nil {
			fmt.Fprintln(os.Stderr, "not logged in")
			os.Exit(1)
		}
		printJSON(user)

	case "profile":
		fs := flag.NewFlagSet("profile", flag.ExitOnError)
		u := fs.String("u", "", "new username")
		e := fs.String("e", "", "new email")
		_ = fs.Parse(args)
		if *u == "" && *e == "" {
			fail(fmt.Errorf("nothing to update: pass -u and/or -e"))
		}
		if !a.auth.UpdateProfile(ctx, model.ProfileUpdate{Username: *u, Email: *e}) {
			os.Exit(1)
		}

	case "passwd":
		fs := flag.NewFlagSet("passwd", flag.ExitOnError)
		oldPwd := fs.String("old", "", "current password")
		newPwd := fs.String("new", "", "new password")
		_ = fs.Parse(args)
		if *oldPwd == "" || *newPwd == "" {
			fail(fmt.Errorf("need -old and -new"))
		}
		if !a.auth.ChangePassword(ctx, *oldPwd, *newPwd) {
			os.Exit(1)
		}

	case "movies":
		fs := flag.NewFlagSet("movies", flag.ExitOnError)
		f := movieFilterFlags(fs)
		_ = fs.Parse(args)
		movies, err := a.movies.List(ctx, *f)
		if err != nil {
			fail(err)
		}
		printJSON(movies)

	case "movie":
		fs := flag.NewFlagSet("movie", flag.ExitOnError)
		id := fs.Int("id", 0, "movie id")
		_ = fs.Parse(args)
		if *id == 0 {
			fail(fmt.Errorf("need -id"))
		}
		movie, err := a.movies.Get(ctx, *id)
		if err != nil {
			fail(err)
		}
		printJSON(movie)

	case "search":
		fs := flag.NewFlagSet("search", flag.ExitOnError)
		q := fs.String("q", "", "search text")
		_ = fs.Parse(args)
		if *q == "" {
			fail(fmt.Errorf("need -q"))
		}
		movies, err := a.movies.Search(ctx, *q)
		if err != nil {
			fail(err)
		}
		printJSON(movies)

	case "top":
		fs := flag.NewFlagSet("top", flag.ExitOnError)
		limit := fs.Int("limit", 10, "number of movies")
		period := fs.String("period", "", "time period filter")
		minVotes := fs.Int("min-votes", 0, "minimum review count")
		genre := fs.String("genre", "", "genre filter")
		_ = fs.Parse(args)
		movies, err := a.movies.Top(ctx, client.TopFilter{
			Limit:    *limit,
			Period:   *period,
			MinVotes: *minVotes,
			Genre:    *genre,
		})
		if err != nil {
			fail(err)
		}
		printJSON(movies)

	case "genres":
		genres, err := a.genres.List(ctx)
		if err != nil {
			fail(err)
		}
		printJSON(genres)

	case "reviews":
		fs := flag.NewFlagSet("reviews", flag.ExitOnError)
		movieID := fs.Int("movie", 0, "movie id")
		_ = fs.Parse(args)
		if *movieID == 0 {
			fail(fmt.Errorf("need -movie"))
		}
		agg, err := a.reviews.ForMovie(ctx, *movieID)
		if err != nil {
			fail(err)
		}
		printJSON(agg)

	case "my-reviews":
		reviews, err := a.reviews.Mine(ctx)
		if err != nil {
			fail(err)
		}
		printJSON(reviews)

	case "review-add":
		fs := flag.NewFlagSet("review-add", flag.ExitOnError)
		movieID := fs.Int("movie", 0, "movie id")
		rating := fs.Int("rating", 0, "rating 1..10")
		comment := fs.String("comment", "", "review text")
		_ = fs.Parse(args)
		if *movieID == 0 || *rating == 0 {
			fail(fmt.Errorf("need -movie and -rating"))
		}
		if err := a.reviews.Create(ctx, *movieID, *rating, *comment); err != nil {
			fail(err)
		}
		fmt.Println("ok")

	case "review-edit":
		fs := flag.NewFlagSet("review-edit", flag.ExitOnError)
		id := fs.Int("id", 0, "review id")
		rating := fs.Int("rating", 0, "rating 1..10")
		comment := fs.String("comment", "", "review text")
		_ = fs.Parse(args)
		if *id == 0 || *rating == 0 {
			fail(fmt.Errorf("need -id and -rating"))
		}
		if err := a.reviews.Update(ctx, *id, *rating, *comment); err != nil {
			fail(err)
		}
		fmt.Println("ok")

	case "review-rm":
		fs := flag.NewFlagSet("review-rm", flag.ExitOnError)
		id := fs.Int("id", 0, "review id")
		_ = fs.Parse(args)
		if *id == 0 {
			fail(fmt.Errorf("need -id"))
		}
		if err := a.reviews.Delete(ctx, *id); err != nil {
			fail(err)
		}
		fmt.Println("ok")

	case "movie-add":
		fs := flag.NewFlagSet("movie-add", flag.ExitOnError)
		in := movieInputFlags(fs)
		_ = fs.Parse(args)
		if in.Title == "" || in.Director == "" || in.Year == 0 {
			fail(fmt.Errorf("need -title, -director and -year"))
		}
		movie, err := a.movies.Create(ctx, *in)
		if err != nil {
			fail(err)
		}
		printJSON(movie)

	case "movie-edit":
		fs := flag.NewFlagSet("movie-edit", flag.ExitOnError)
		id := fs.Int("id", 0, "movie id")
		in := movieInputFlags(fs)
		_ = fs.Parse(args)
		if *id == 0 {
			fail(fmt.Errorf("need -id"))
		}
		if err := a.movies.Update(ctx, *id, *in); err != nil {
			fail(err)
		}
		fmt.Println("ok")

	case "movie-rm":
		fs := flag.NewFlagSet("movie-rm", flag.ExitOnError)
		id := fs.Int("id", 0, "movie id")
		_ = fs.Parse(args)
		if *id == 0 {
			fail(fmt.Errorf("need -id"))
		}
		if err := a.movies.Delete(ctx, *id); err != nil {
			fail(err)
		}
		fmt.Println("ok")

	case "settings":
		cmdSettings(a, args)

	case "admin":
		cmdAdmin(ctx, a, args)

	default:
		usage()
	}
}

// movieFilterFlags registers the catalog filter flags on fs and returns the
// filter that will be filled after fs.Parse.
func movieFilterFlags(fs *flag.FlagSet) *client.MovieFilter {
	f := &client.MovieFilter{}
	fs.IntVar(&f.Page, "page", 1, "page number")
	fs.IntVar(&f.Limit, "limit", 12, "page size")
	fs.StringVar(&f.SortBy, "sort", "", "sort key (title|year|rating|reviews)")
	fs.StringVar(&f.Order, "order", "", "sort order (asc|desc)")
	fs.IntVar(&f.YearFrom, "year-from", 0, "minimum release year")
	fs.IntVar(&f.YearTo, "year-to", 0, "maximum release year")
	fs.StringVar(&f.Genre, "genre", "", "genre filter")
	fs.StringVar(&f.Query, "q", "", "free text filter")
	return f
}

// movieInputFlags registers the movie payload flags on fs.
func movieInputFlags(fs *flag.FlagSet) *model.MovieInput {
	in := &model.MovieInput{}
	fs.StringVar(&in.Title, "title", "", "title")
	fs.StringVar(&in.Director, "director", "", "director")
	fs.IntVar(&in.Year, "year", 0, "release year")
	fs.StringVar(&in.Description, "description", "", "description")
	fs.IntVar(&in.Duration, "duration", 0, "duration in minutes")
	fs.StringVar(&in.PosterURL, "poster", "", "poster URL")
	return in
}

// cmdSettings reads or writes one of the local settings blobs.
func cmdSettings(a *app, args []string) {
	fs := flag.NewFlagSet("settings", flag.ExitOnError)
	key := fs.String("key", "system", "settings blob: system or user")
	set := fs.String("set", "", "JSON file to store ('-'=stdin); omit to print")
	_ = fs.Parse(args)

	storageKey := session.KeySystemSettings
	if *key == "user" {
		storageKey = session.KeyUserSettings
	} else if *key != "system" {
		fail(fmt.Errorf("unknown settings key %q", *key))
	}

	if *set == "" {
		blob := a.sess.Settings(storageKey)
		if blob == nil {
			fmt.Println("{}")
			return
		}
		os.Stdout.Write(append(blob, '\n'))
		return
	}

	b, err := readAll(*set)
	if err != nil {
		fail(err)
	}
	if !json.Valid(b) {
		fail(fmt.Errorf("settings must be valid JSON"))
	}
	if err := a.sess.SaveSettings(storageKey, b); err != nil {
		fail(err)
	}
	fmt.Println("ok")
}

func readAll(p string) ([]byte, error) {
	if p == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(p)
}
