// Command statemod reads, converts, archives, and serves StateMod
// river-basin model datasets and time series files.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	kongdotenv "github.com/titusjaka/kong-dotenv-go"
	_ "modernc.org/sqlite"

	"github.com/lox/statemod/internal/api"
	"github.com/lox/statemod/internal/chart"
	"github.com/lox/statemod/internal/dataset"
	"github.com/lox/statemod/internal/fetch"
	"github.com/lox/statemod/internal/store"
	"github.com/lox/statemod/internal/ts"
	"github.com/lox/statemod/internal/tsfile"
)

type cli struct {
	EnvFile kongdotenv.ENVFileConfig `kong:"optional,name='env-file',help='Load flags from a .env file.'"`

	Detect  DetectCmd  `cmd:"" help:"Detect the data interval of a time series file."`
	Series  SeriesCmd  `cmd:"" help:"Read a time series file and print a summary."`
	Convert ConvertCmd `cmd:"" help:"Read a time series file and rewrite it."`
	Read    ReadCmd    `cmd:"" help:"Read a full dataset from a response file and print a summary."`
	Fetch   FetchCmd   `cmd:"" help:"Download a published dataset over FTP."`
	Archive ArchiveCmd `cmd:"" help:"Read a dataset and archive its time series into sqlite."`
	Chart   ChartCmd   `cmd:"" help:"Render a series from a time series file to a PNG."`
	Serve   ServeCmd   `cmd:"" help:"Serve a dataset as JSON over HTTP."`
}

func main() {
	var app cli
	ctx := kong.Parse(&app,
		kong.Name("statemod"),
		kong.Description("StateMod dataset and time series tooling."),
		kong.Configuration(kongdotenv.ENVFileReader, ".env"),
	)
	ctx.FatalIfErrorf(ctx.Run())
}

type DetectCmd struct {
	File string `arg:"" help:"Time series file."`
}

func (c *DetectCmd) Run() error {
	interval, err := tsfile.DetectInterval(c.File)
	if err != nil {
		return err
	}
	fmt.Println(interval)
	return nil
}

type SeriesCmd struct {
	File string `arg:"" help:"Time series file."`
	ID   string `help:"Read only the series for this station."`
	Full bool   `help:"Read values, not just headers."`
}

func (c *SeriesCmd) Run() error {
	list, err := tsfile.ReadFile(c.File, tsfile.ReadOptions{ID: c.ID, ReadData: c.Full})
	if err != nil {
		return err
	}
	for _, t := range list {
		fmt.Printf("%-12s %-16s %-6s %s to %s\n", t.ID, t.DataType, t.Units, t.Start, t.End)
	}
	fmt.Printf("%d series\n", len(list))
	return nil
}

type ConvertCmd struct {
	In        string `arg:"" help:"Input time series file."`
	Out       string `arg:"" help:"Output time series file."`
	YearType  string `default:"CYR" help:"Output year type (CYR, WYR, IYR)."`
	Precision *int   `help:"Output value precision; negative means at most. Defaults from the data units."`
}

func (c *ConvertCmd) Run() error {
	list, err := tsfile.ReadFile(c.In, tsfile.ReadOptions{ReadData: true})
	if err != nil {
		return err
	}
	yt, err := ts.ParseYearType(c.YearType)
	if err != nil {
		return err
	}
	return tsfile.WriteFile(c.Out, list, tsfile.WriteOptions{
		YearType:  yt,
		Precision: c.Precision,
	})
}

type ReadCmd struct {
	Response     string `arg:"" help:"Response (.rsp) file."`
	NoData       bool   `help:"Record file names without reading file contents."`
	NoTimeSeries bool   `help:"Skip time series file contents."`
}

func (c *ReadCmd) Run() error {
	ds, err := dataset.ReadResponse(c.Response, dataset.ReadOptions{
		ReadData:       !c.NoData,
		ReadTimeSeries: !c.NoData && !c.NoTimeSeries,
	})
	if err != nil {
		return err
	}
	for _, g := range ds.Groups() {
		fmt.Printf("%s\n", g.Name)
		for _, comp := range g.Children {
			status := ""
			if !comp.Visible {
				status = " (hidden)"
			}
			if comp.ErrorReading {
				status += " (read error)"
			}
			if comp.FileName == "" {
				continue
			}
			fmt.Printf("  %-44s %s%s\n", comp.Name, comp.FileName, status)
		}
	}
	if len(ds.Unhandled) > 0 {
		fmt.Printf("unhandled properties:\n")
		for _, p := range ds.Unhandled {
			fmt.Printf("  %s = %s\n", p.Key, p.Value)
		}
	}
	return nil
}

type FetchCmd struct {
	RemoteDir string `arg:"" help:"Remote dataset directory."`
	LocalDir  string `arg:"" help:"Local directory to mirror into."`
	Host      string `help:"FTP host, host:port."`
	DB        string `default:"data/statemod.db" help:"Path to sqlite database for the fetch log."`
}

func (c *FetchCmd) Run() error {
	st, closeDB, err := openStore(c.DB)
	if err != nil {
		return err
	}
	defer closeDB()

	client := fetch.New(c.Host)
	files, err := client.Dataset(c.RemoteDir, c.LocalDir)
	for _, f := range files {
		info, statErr := os.Stat(f)
		var size int64
		if statErr == nil {
			size = info.Size()
		}
		if logErr := st.LogFetch(store.FetchRecord{
			Host:       client.Host(),
			RemotePath: c.RemoteDir,
			LocalPath:  f,
			Bytes:      size,
		}); logErr != nil {
			log.Printf("log fetch of %s: %v", f, logErr)
		}
	}
	if err != nil {
		return err
	}
	fmt.Printf("fetched %d files to %s\n", len(files), c.LocalDir)
	return nil
}

type ArchiveCmd struct {
	Response string `arg:"" help:"Response (.rsp) file."`
	DB       string `default:"data/statemod.db" help:"Path to sqlite database."`
}

func (c *ArchiveCmd) Run() error {
	st, closeDB, err := openStore(c.DB)
	if err != nil {
		return err
	}
	defer closeDB()

	ds, err := dataset.ReadResponse(c.Response, dataset.ReadOptions{ReadData: true, ReadTimeSeries: true})
	if err != nil {
		return err
	}

	datasetID, err := st.UpsertDataset(store.Dataset{
		BaseName:     ds.BaseName,
		ResponseFile: filepath.Base(c.Response),
		Dir:          ds.Dir,
	})
	if err != nil {
		return err
	}

	archived := 0
	for _, g := range ds.Groups() {
		for _, comp := range g.Children {
			list, ok := comp.Data.([]*ts.TimeSeries)
			if !ok {
				continue
			}
			for _, t := range list {
				if err := st.InsertSeries(datasetID, t); err != nil {
					return fmt.Errorf("archive %s %s: %w", comp.Name, t.ID, err)
				}
				archived++
			}
		}
	}
	fmt.Printf("archived %d series from %s\n", archived, ds.BaseName)
	return nil
}

type ChartCmd struct {
	File   string `arg:"" help:"Time series file."`
	ID     string `required:"" help:"Station identifier to plot."`
	Out    string `default:"chart.png" help:"Output PNG path."`
	Width  int    `default:"900"`
	Height int    `default:"400"`
}

func (c *ChartCmd) Run() error {
	list, err := tsfile.ReadFile(c.File, tsfile.ReadOptions{ID: c.ID, ReadData: true})
	if err != nil {
		return err
	}
	if len(list) == 0 {
		return fmt.Errorf("no series %q in %s", c.ID, c.File)
	}
	f, err := os.Create(c.Out)
	if err != nil {
		return err
	}
	if err := chart.RenderPNG(f, list[0], c.Width, c.Height); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

type ServeCmd struct {
	Response     string `arg:"" help:"Response (.rsp) file."`
	Port         string `default:"8080" help:"HTTP server port."`
	NoTimeSeries bool   `help:"Skip time series file contents."`
}

func (c *ServeCmd) Run() error {
	ds, err := dataset.ReadResponse(c.Response, dataset.ReadOptions{
		ReadData:       true,
		ReadTimeSeries: !c.NoTimeSeries,
	})
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Printf("serving dataset %s on :%s", ds.BaseName, c.Port)
	return api.NewServer(ds, c.Port).Run(ctx)
}

func openStore(path string) (*store.Store, func(), error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create db directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	db.Exec("PRAGMA journal_mode=WAL")
	st := store.New(db)
	if err := st.Migrate(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	return st, func() { db.Close() }, nil
}
