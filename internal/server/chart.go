package server

import (
	"fmt"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/KilimcininKorOglu/treelab/internal/storage/snapshot"
	"github.com/KilimcininKorOglu/treelab/internal/workbench"
)

// treeData converts a snapshot into echarts tree nodes. Node names are the
// rendered labels, so a highlighted node shows its marker in the chart too.
func treeData(n *snapshot.Node) *opts.TreeData {
	d := &opts.TreeData{Name: snapshot.Label(n)}
	for _, child := range n.Children {
		d.Children = append(d.Children, treeData(child))
	}
	return d
}

// treeChart builds the chart for the selected tree.
func treeChart(wb *workbench.Workbench) *charts.Tree {
	root := wb.Snapshot()
	data := &opts.TreeData{Name: snapshot.EmptyLabel}
	if root != nil {
		data = treeData(root)
	}

	stats := wb.Stats()
	tree := charts.NewTree()
	tree.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "treelab",
			Width:     "1200px",
			Height:    "700px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("%s of order %d", wb.Kind().Label(), wb.Order()),
			Subtitle: fmt.Sprintf("version %d, %d keys, height %d",
				wb.Version(), stats.Keys, stats.Height),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(false)}),
	)
	tree.AddSeries(wb.Kind().String(), []opts.TreeData{*data}).SetSeriesOptions(
		charts.WithTreeOpts(opts.TreeChart{
			Layout:           "orthogonal",
			Orient:           "TB",
			Roam:             opts.Bool(true),
			InitialTreeDepth: -1,
		}),
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
	)
	return tree
}

// HandleChart handles GET /
func (h *Handlers) HandleChart(w http.ResponseWriter, r *http.Request) {
	page := components.NewPage()
	page.PageTitle = "treelab"
	h.state.do(func(wb *workbench.Workbench) {
		page.AddCharts(treeChart(wb))
	})
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	// Part of the page may already be written, so the status cannot change.
	if err := page.Render(w); err != nil {
		h.logger.WithRequestID(RequestID(r)).Error("render chart failed", "error", err)
	}
}
