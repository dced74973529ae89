package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/go-logr/stdr"
	flags "github.com/jessevdk/go-flags"
	"github.com/viant/mcp-protocol/schema"

	dbmcp "github.com/viant/dbcall-toolbox/dbcalls/mcp"
	dbservice "github.com/viant/dbcall-toolbox/dbcalls/service"
	mcpsrv "github.com/viant/mcp/server"
)

// Options defines CLI flags for the database call migration.
type Options struct {
	File      string `short:"f" long:"file" description:"File path or AFS URL to migrate (default script.js)"`
	DryRun    bool   `short:"n" long:"dry-run" description:"Print the rewrite as a diff without writing the file"`
	Verbose   bool   `short:"v" long:"verbose" description:"Log per-rule match counts to stderr"`
	DiffBytes int    `long:"diff-bytes" description:"Cap for the dry-run diff size in bytes"`
	HTTPAddr  string `short:"a" long:"addr" description:"Serve the fixDatabaseCalls MCP tool on this HTTP address instead of running once"`
}

func main() {

	var opts Options
	if _, err := flags.NewParser(&opts, flags.Default).Parse(); err != nil {
		os.Exit(2)
	}
	if opts.File == "" {
		opts.File = envOr("DBCALLS_FILE", dbservice.DefaultTarget)
	}

	logger := stdr.New(log.New(os.Stderr, "", log.LstdFlags))
	if opts.Verbose {
		stdr.SetVerbosity(1)
	}

	// served requests may only rewrite the configured file
	svc := dbservice.NewService(&dbservice.Config{Target: opts.File, SedDiffBytes: opts.DiffBytes, LockTarget: opts.HTTPAddr != ""})
	svc.SetLogger(logger)

	if opts.HTTPAddr != "" {
		serve(svc, opts.HTTPAddr)
		return
	}

	out, err := svc.Fix(context.Background(), &dbservice.FixInput{DryRun: opts.DryRun})
	if err != nil {
		log.Fatal(err)
	}
	if opts.DryRun {
		fmt.Print(out.Diff)
		fmt.Printf("%d edit(s) pending in %s\n", out.Edits, out.URL)
		return
	}
	fmt.Println("Database calls updated")
}

func serve(svc *dbservice.Service, addr string) {
	options := []mcpsrv.Option{
		mcpsrv.WithImplementation(schema.Implementation{Name: "dbcalls-mcp", Version: "0.1.0"}),
		mcpsrv.WithNewHandler(dbmcp.NewHandler(svc)),
		mcpsrv.WithEndpointAddress(addr),
		mcpsrv.WithRootRedirect(true),
		mcpsrv.WithStreamableURI("/mcp"),
	}
	server, err := mcpsrv.New(options...)
	if err != nil {
		log.Fatal(err)
	}
	// Enable streamable HTTP so /mcp endpoint is active
	server.UseStreamableHTTP(true)
	if err := server.HTTP(context.Background(), addr).ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
