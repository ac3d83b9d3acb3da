package dashboard

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/IAtecnoaccion/dashboard-proyecto-xtract/internal/report"
)

// chartHeight matches the frame height on the dashboard page.
const chartHeight = "400px"

type renderer interface {
	Render(w io.Writer) error
}

func initOpts(title string) charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		PageTitle: title,
		Width:     "100%",
		Height:    chartHeight,
	})
}

func statusPie(v report.View) renderer {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		initOpts("Distribución de Estados"),
		charts.WithTitleOpts(opts.Title{Title: "Distribución de Estados"}),
	)

	data := make([]opts.PieData, 0, len(v.Statuses))
	for _, s := range v.Statuses {
		data = append(data, opts.PieData{
			Name:      statusLabel(s.Status),
			Value:     s.Count,
			ItemStyle: &opts.ItemStyle{Color: s.Color},
		})
	}

	pie.AddSeries("Estados", data).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{Formatter: "{b}: {d}%"}))
	return pie
}

func categoryBar(v report.View) renderer {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		initOpts("Facturas por Categoría"),
		charts.WithTitleOpts(opts.Title{Title: "Facturas por Categoría"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Categoría"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Cantidad de Facturas"}),
	)

	names := make([]string, 0, len(v.Categories))
	data := make([]opts.BarData, 0, len(v.Categories))
	for _, c := range v.Categories {
		names = append(names, c.Category.String())
		data = append(data, opts.BarData{
			Name:      c.Category.String(),
			Value:     c.Count,
			ItemStyle: &opts.ItemStyle{Color: c.Color},
		})
	}

	bar.SetXAxis(names).AddSeries("Facturas", data)
	return bar
}

func progressGauge(v report.View) renderer {
	p := v.Progress
	threshold := "umbral %.0f%% no alcanzado"
	if p.ReachedThreshold() {
		threshold = "umbral %.0f%% alcanzado"
	}

	gauge := charts.NewGauge()
	gauge.SetGlobalOptions(
		initOpts("% Completado"),
		charts.WithTitleOpts(opts.Title{
			Title: "% Completado",
			Subtitle: fmt.Sprintf("%d de %d facturas · %+.1f%% sobre la referencia %.0f%% · "+threshold,
				p.Done, p.Total, p.Delta(), report.GaugeReference, report.GaugeThreshold),
		}),
	)

	// The pointer takes the color of the band the progress falls in.
	gauge.AddSeries("Progreso", []opts.GaugeData{{
		Name:  "% Completado",
		Value: math.Round(p.Percent*10) / 10,
	}}, charts.WithItemStyleOpts(opts.ItemStyle{Color: p.BandColor()}))
	return gauge
}
