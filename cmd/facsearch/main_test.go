package main

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func ingestApp() *cli.App {
	return &cli.App{
		Name: "facsearch",
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "Load faculty records from a CSV file into the database",
				Action: ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "csv",
						Usage:    "Path to the faculty CSV file",
						Required: true,
					},
				},
			},
		},
	}
}

func TestIngestCommandFlags(t *testing.T) {
	t.Run("db is required", func(t *testing.T) {
		app := ingestApp()
		err := app.Run([]string{"facsearch", "ingest", "--csv", "/tmp/test.csv"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db")
	})

	t.Run("csv is required", func(t *testing.T) {
		app := ingestApp()
		err := app.Run([]string{"facsearch", "ingest", "--db", "/tmp/test"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "csv")
	})
}

func TestCorpusFlags(t *testing.T) {
	flags := corpusFlags()

	findString := func(name string) *cli.StringFlag {
		for _, flag := range flags {
			if f, ok := flag.(*cli.StringFlag); ok && f.Name == name {
				return f
			}
		}
		return nil
	}
	findInt := func(name string) *cli.IntFlag {
		for _, flag := range flags {
			if f, ok := flag.(*cli.IntFlag); ok && f.Name == name {
				return f
			}
		}
		return nil
	}

	t.Run("embedding-host has default value", func(t *testing.T) {
		flag := findString("embedding-host")
		require.NotNil(t, flag)
		assert.Equal(t, "http://localhost:11434/v1", flag.Value)
	})

	t.Run("embedding-model has default value", func(t *testing.T) {
		flag := findString("embedding-model")
		require.NotNil(t, flag)
		assert.Equal(t, "all-minilm", flag.Value)
	})

	t.Run("dimension has default value of 384", func(t *testing.T) {
		flag := findInt("dimension")
		require.NotNil(t, flag)
		assert.Equal(t, 384, flag.Value)
	})

	t.Run("db is optional", func(t *testing.T) {
		flag := findString("db")
		require.NotNil(t, flag)
		assert.False(t, flag.Required)
	})

	t.Run("cache is optional with no default", func(t *testing.T) {
		flag := findString("cache")
		require.NotNil(t, flag)
		assert.False(t, flag.Required)
		assert.Empty(t, flag.Value)
	})
}

func TestServeFlags(t *testing.T) {
	t.Run("addr has default value", func(t *testing.T) {
		var addrFlag *cli.StringFlag
		for _, flag := range serveFlags() {
			if f, ok := flag.(*cli.StringFlag); ok && f.Name == "addr" {
				addrFlag = f
				break
			}
		}
		require.NotNil(t, addrFlag)
		assert.Equal(t, ":8080", addrFlag.Value)
	})
}

func TestSearchCommandValidation(t *testing.T) {
	app := &cli.App{
		Name: "facsearch",
		Commands: []*cli.Command{
			{
				Name:   "search",
				Action: searchCommand,
				Flags:  corpusFlags(),
			},
		},
	}

	t.Run("missing query fails", func(t *testing.T) {
		err := app.Run([]string{"facsearch", "search"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "query")
	})
}

func TestLoadRecordsValidation(t *testing.T) {
	run := func(args ...string) error {
		app := &cli.App{
			Name: "facsearch",
			Commands: []*cli.Command{
				{
					Name:  "probe",
					Flags: corpusFlags(),
					Action: func(c *cli.Context) error {
						_, cleanup, err := loadRecords(c.Context, c)
						cleanup()
						return err
					},
				},
			},
		}
		return app.Run(append([]string{"facsearch", "probe"}, args...))
	}

	t.Run("neither csv nor db fails", func(t *testing.T) {
		err := run()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--csv or --db")
	})

	t.Run("both csv and db fails", func(t *testing.T) {
		err := run("--csv", "/tmp/test.csv", "--db", "/tmp/test")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mutually exclusive")
	})
}

func TestSetupLogger(t *testing.T) {
	loggerApp := func() *cli.App {
		return &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "log-level",
					Aliases: []string{"l"},
					Value:   "info",
				},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error {
				return nil
			},
		}
	}

	t.Run("valid log levels", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected slog.Level
		}{
			{"debug", slog.LevelDebug},
			{"info", slog.LevelInfo},
			{"warn", slog.LevelWarn},
			{"error", slog.LevelError},
		}

		for _, tc := range testCases {
			t.Run(tc.input, func(t *testing.T) {
				err := loggerApp().Run([]string{"test", "--log-level", tc.input})
				require.NoError(t, err)
			})
		}
	})

	t.Run("case insensitive log levels", func(t *testing.T) {
		for _, tc := range []string{"DEBUG", "Info", "WaRn", "ERROR"} {
			t.Run(tc, func(t *testing.T) {
				err := loggerApp().Run([]string{"test", "--log-level", tc})
				require.NoError(t, err)
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		err := loggerApp().Run([]string{"test", "--log-level", "invalid"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
		assert.Contains(t, err.Error(), "invalid")
	})

	t.Run("log-level flag has alias -l", func(t *testing.T) {
		app := loggerApp()
		app.Action = func(c *cli.Context) error {
			assert.Equal(t, "debug", c.String("log-level"))
			return nil
		}
		err := app.Run([]string{"test", "-l", "debug"})
		require.NoError(t, err)
	})
}
