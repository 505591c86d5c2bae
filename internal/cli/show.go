package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/rtm0/ccammeta/internal/dataset"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show FILE",
		Short: "Print the dimensions, variables and attributes of a NetCDF file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			ds, err := dataset.Open(args[0])
			if err != nil {
				return err
			}
			a.logger.Debug("dataset summary", ds.Summary()...)
			renderDataset(cc.OutOrStdout(), ds)
			return nil
		},
	}
}

func renderDataset(w io.Writer, ds *dataset.Dataset) {
	style := table.StyleRounded
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		style = table.StyleColoredBright
	}

	dims := table.NewWriter()
	dims.SetStyle(style)
	dims.SetTitle("Dimensions")
	dims.AppendHeader(table.Row{"Name", "Length"})
	for _, d := range ds.Dims {
		dims.AppendRow(table.Row{d.Name, d.Len})
	}
	fmt.Fprintln(w, dims.Render())

	vars := table.NewWriter()
	vars.SetStyle(style)
	vars.SetTitle("Variables")
	vars.AppendHeader(table.Row{"Name", "Kind", "Dimensions", "Attribute", "Value"})
	for _, v := range ds.Vars {
		kind := "data"
		if v.IsCoord() {
			kind = "coord"
		}
		row := table.Row{v.Name, kind, strings.Join(v.Dims, ", ")}
		keys := v.Attrs.Keys()
		if len(keys) == 0 {
			vars.AppendRow(append(row, "", ""))
		}
		for i, k := range keys {
			if i > 0 {
				row = table.Row{"", "", ""}
			}
			val, _ := v.Attrs.String(k)
			vars.AppendRow(append(row, k, val))
		}
		vars.AppendSeparator()
	}
	fmt.Fprintln(w, vars.Render())

	global := table.NewWriter()
	global.SetStyle(style)
	global.SetTitle("Global attributes")
	global.AppendHeader(table.Row{"Attribute", "Value"})
	for _, k := range ds.Attrs.Keys() {
		val, _ := ds.Attrs.String(k)
		global.AppendRow(table.Row{k, val})
	}
	fmt.Fprintln(w, global.Render())
}
