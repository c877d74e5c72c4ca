package cli

import (
	"github.com/rshade/datalens/internal/config"
	"github.com/rshade/datalens/internal/menu"
	"github.com/rshade/datalens/internal/plot"
	"github.com/rshade/datalens/internal/tui"
)

// menuOptions maps the display and plot sections onto the menu settings.
// The menu draws histograms with the CLI bin count.
func menuOptions(cfg *config.Config) menu.Options {
	return menu.Options{
		PageSize:    cfg.Display.PageSize,
		HeadRows:    cfg.Display.HeadRows,
		MaxColWidth: cfg.Display.MaxColWidth,
		PlotDir:     cfg.Plot.Dir,
		PlotOpen:    cfg.Plot.Open,
		HistBins:    cfg.Plot.CLIHistBins,
		BarLimit:    cfg.Plot.BarLimit,
		PlotWidth:   cfg.Plot.Width,
		PlotHeight:  cfg.Plot.Height,
	}
}

func tuiOptions(cfg *config.Config, path string) tui.Options {
	return tui.Options{
		Path:        path,
		PageSize:    cfg.Display.PageSize,
		HeadRows:    cfg.Display.HeadRows,
		MaxColWidth: cfg.Display.MaxColWidth,
		PlotDir:     cfg.Plot.Dir,
		PlotOpen:    cfg.Plot.Open,
		HistBins:    cfg.Plot.HistBins,
		BarLimit:    cfg.Plot.BarLimit,
		PlotWidth:   cfg.Plot.Width,
		PlotHeight:  cfg.Plot.Height,
	}
}

// plotDefaults fills the size and limits of opts from the plot section.
func plotDefaults(cfg *config.Config, opts plot.Options) plot.Options {
	if opts.Bins <= 0 {
		opts.Bins = cfg.Plot.CLIHistBins
	}
	if opts.Limit <= 0 {
		opts.Limit = cfg.Plot.BarLimit
	}
	if opts.Width <= 0 {
		opts.Width = cfg.Plot.Width
	}
	if opts.Height <= 0 {
		opts.Height = cfg.Plot.Height
	}
	return opts
}
