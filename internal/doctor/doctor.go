// Package doctor checks that kr can reach the knowledge_repo tool and the
// repository it is configured for.
package doctor

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"

	krexec "github.com/michaeldyrynda/kr/internal/exec"
	"github.com/michaeldyrynda/kr/internal/git"
	"github.com/michaeldyrynda/kr/internal/remote"
)

// Kind is the storage a repository specification points at.
type Kind string

const (
	KindNone     Kind = "none"
	KindLocal    Kind = "local"
	KindPostgres Kind = "postgres"
	KindMySQL    Kind = "mysql"
	KindSQLite   Kind = "sqlite"
	KindOther    Kind = "other"
)

// Classify returns the kind of repository repo refers to. Database
// repositories use SQLAlchemy style URIs, so a driver suffix such as
// postgresql+psycopg2:// is accepted.
func Classify(repo string) Kind {
	if repo == "" {
		return KindNone
	}
	scheme, _, found := strings.Cut(repo, "://")
	if !found {
		return KindLocal
	}
	scheme, _, _ = strings.Cut(strings.ToLower(scheme), "+")
	switch scheme {
	case "postgres", "postgresql":
		return KindPostgres
	case "mysql":
		return KindMySQL
	case "sqlite":
		return KindSQLite
	}
	return KindOther
}

// Status is the outcome of a single check.
type Status int

const (
	StatusOK Status = iota
	StatusWarn
	StatusFail
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusWarn:
		return "warn"
	default:
		return "fail"
	}
}

// Check is one line of a Report.
type Check struct {
	Name   string
	Status Status
	Detail string
}

// Report collects the checks of one run.
type Report struct {
	Checks []Check
}

func (r *Report) add(name string, status Status, format string, args ...interface{}) {
	r.Checks = append(r.Checks, Check{Name: name, Status: status, Detail: fmt.Sprintf(format, args...)})
}

// Failed reports whether any check failed.
func (r *Report) Failed() bool {
	for _, c := range r.Checks {
		if c.Status == StatusFail {
			return true
		}
	}
	return false
}

// Pinger opens a connection to a database URI and checks it responds.
type Pinger func(ctx context.Context, uri string) error

// Doctor runs the checks. The zero value is not usable; call New.
type Doctor struct {
	LookPath     func(file string) (string, error)
	PingPostgres Pinger
	PingMySQL    Pinger
	Timeout      time.Duration
	Remote       string
	Hosts        []string

	git *git.Client
}

// New returns a Doctor that uses commander for git and real database
// drivers for pings.
func New(commander krexec.Commander, remoteName string, hosts []string) *Doctor {
	return &Doctor{
		LookPath:     exec.LookPath,
		PingPostgres: PingPostgres,
		PingMySQL:    PingMySQL,
		Timeout:      5 * time.Second,
		Remote:       remoteName,
		Hosts:        hosts,
		git:          git.New(commander),
	}
}

// Run checks tool and repo and returns the report.
func (d *Doctor) Run(ctx context.Context, tool, repo string) *Report {
	report := &Report{}
	d.checkTool(report, tool)

	kind := Classify(repo)
	switch kind {
	case KindNone:
		report.add("repository", StatusFail, "not set; pass --repo or set KNOWLEDGE_REPO")
	case KindLocal:
		d.checkLocal(ctx, report, repo)
	case KindPostgres:
		d.checkDatabase(ctx, report, kind, repo, d.PingPostgres)
	case KindMySQL:
		d.checkDatabase(ctx, report, kind, repo, d.PingMySQL)
	case KindSQLite:
		d.checkSQLite(report, repo)
	default:
		report.add("repository", StatusWarn, "%s is not checked", repo)
	}

	return report
}

func (d *Doctor) checkTool(report *Report, tool string) {
	fields := strings.Fields(tool)
	if len(fields) == 0 {
		report.add("tool", StatusFail, "no tool configured")
		return
	}
	path, err := d.LookPath(fields[0])
	if err != nil {
		report.add("tool", StatusFail, "%s not found on PATH", fields[0])
		return
	}
	report.add("tool", StatusOK, "%s", path)
}

func (d *Doctor) checkLocal(ctx context.Context, report *Report, repo string) {
	info, err := os.Stat(repo)
	if os.IsNotExist(err) {
		report.add("repository", StatusWarn, "%s does not exist yet; run kr init", repo)
		return
	}
	if err != nil {
		report.add("repository", StatusFail, "%v", err)
		return
	}
	if !info.IsDir() {
		report.add("repository", StatusFail, "%s is not a directory", repo)
		return
	}
	if !git.IsRepo(repo) {
		report.add("repository", StatusWarn, "%s is not a git repository", repo)
		return
	}
	report.add("repository", StatusOK, "git repository at %s", repo)

	url, err := d.git.RemoteURL(ctx, repo, d.Remote)
	if err != nil {
		report.add("remote", StatusFail, "%v", err)
		return
	}
	link, err := remote.Parse(url, d.Hosts)
	if err != nil {
		report.add("remote", StatusWarn, "%v; submit cannot build a review URL", err)
		return
	}
	report.add("remote", StatusOK, "%s", link.BaseURL())
}

func (d *Doctor) checkDatabase(ctx context.Context, report *Report, kind Kind, uri string, ping Pinger) {
	ctx, cancel := context.WithTimeout(ctx, d.Timeout)
	defer cancel()

	if err := ping(ctx, uri); err != nil {
		report.add("repository", StatusFail, "%s: %v", kind, err)
		return
	}
	report.add("repository", StatusOK, "%s database reachable", kind)
}

func (d *Doctor) checkSQLite(report *Report, uri string) {
	path := SQLitePath(uri)
	if _, err := os.Stat(path); err != nil {
		report.add("repository", StatusWarn, "sqlite database %s does not exist yet", path)
		return
	}
	report.add("repository", StatusOK, "sqlite database at %s", path)
}

// SQLitePath returns the file of a sqlite:///path URI. Three slashes
// precede a relative path and four an absolute one.
func SQLitePath(uri string) string {
	_, path, _ := strings.Cut(uri, ":///")
	return filepath.FromSlash(path)
}

// PostgresURI rewrites a SQLAlchemy postgres URI into one pgx accepts.
func PostgresURI(uri string) string {
	_, rest, _ := strings.Cut(uri, "://")
	return "postgres://" + rest
}

// PingPostgres connects with pgx and pings the server.
func PingPostgres(ctx context.Context, uri string) error {
	conn, err := pgx.Connect(ctx, PostgresURI(uri))
	if err != nil {
		return fmt.Errorf("connecting: %w", err)
	}
	defer conn.Close(context.Background())

	return conn.Ping(ctx)
}

// MySQLConfig converts a mysql[+driver]://user:pass@host:port/db URI into
// a driver configuration.
func MySQLConfig(uri string) (*mysql.Config, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("parsing mysql URI: %w", err)
	}

	cfg := mysql.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = u.Host
	if u.Port() == "" {
		cfg.Addr = net.JoinHostPort(u.Hostname(), "3306")
	}
	cfg.DBName = strings.TrimPrefix(u.Path, "/")
	if u.User != nil {
		cfg.User = u.User.Username()
		cfg.Passwd, _ = u.User.Password()
	}
	return cfg, nil
}

// PingMySQL connects with go-sql-driver/mysql and pings the server.
func PingMySQL(ctx context.Context, uri string) error {
	cfg, err := MySQLConfig(uri)
	if err != nil {
		return err
	}
	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return fmt.Errorf("configuring mysql: %w", err)
	}

	db := sql.OpenDB(connector)
	defer db.Close()

	return db.PingContext(ctx)
}
