package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/petrich/aggpack/internal/engine"
	"github.com/petrich/aggpack/internal/export"
	"github.com/petrich/aggpack/internal/model"
)

type generateOptions struct {
	seed     int64
	index    string
	csvPath  string
	xlsxPath string
	dxfPath  string
	pdfPath  string
	cardPath string
	quiet    bool
}

func runGenerate(configPath string, opts generateOptions) error {
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if opts.seed != 0 {
		cfg.Settings.Seed = opts.seed
	}
	if opts.index != "" {
		cfg.Settings.Index = model.IndexKind(opts.index)
		if err := cfg.Settings.Validate(); err != nil {
			return err
		}
	}

	gen, err := engine.New(cfg.Region, cfg.Groups, cfg.Settings)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var sink model.EventSink = model.NullSink{}
	if !opts.quiet {
		sink = &consoleSink{}
	}

	summary, err := gen.Run(ctx, sink)
	if err != nil {
		return err
	}

	aggs := gen.Results()
	if opts.csvPath != "" {
		if err := export.ExportCSV(opts.csvPath, aggs); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", opts.csvPath)
	}
	if opts.xlsxPath != "" {
		if err := export.ExportXLSX(opts.xlsxPath, aggs, summary); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", opts.xlsxPath)
	}
	if opts.dxfPath != "" {
		if err := export.ExportDXF(opts.dxfPath, cfg.Region, aggs, cfg.Groups); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", opts.dxfPath)
	}
	if opts.pdfPath != "" {
		if err := export.ExportPDF(opts.pdfPath, cfg.Region, aggs, cfg.Groups, summary); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", opts.pdfPath)
	}
	if opts.cardPath != "" {
		if err := export.ExportRunCard(opts.cardPath, summary, cfg.Settings); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", opts.cardPath)
	}

	if summary.Status == model.StatusFailed {
		return fmt.Errorf("generation failed after %d rounds", summary.Attempts)
	}
	return nil
}

func runValidate(configPath string) error {
	if _, err := model.LoadConfig(configPath); err != nil {
		return err
	}
	fmt.Println("configuration is valid")
	return nil
}

func runInit(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("%s already exists", configPath)
	}
	if err := model.SaveConfig(configPath, model.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", configPath)
	return nil
}
