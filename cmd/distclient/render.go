package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/bft-labs/distclient/internal/export"
)

type outputOptions struct {
	json bool
	xlsx string
}

// render writes data as JSON, tables to a workbook, or tables as aligned text.
func (o outputOptions) render(w io.Writer, data any, tables []export.Table) error {
	switch {
	case o.xlsx != "":
		return writeWorkbook(w, o.xlsx, tables)
	case o.json:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	default:
		return writeText(w, tables)
	}
}

func writeWorkbook(w io.Writer, path string, tables []export.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create workbook: %w", err)
	}
	if err := export.WriteXLSX(f, tables...); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close workbook: %w", err)
	}
	fmt.Fprintf(w, "wrote %s\n", path)
	return nil
}

func writeText(w io.Writer, tables []export.Table) error {
	for i, t := range tables {
		if len(tables) > 1 {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "== %s ==\n", t.Name)
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(t.Header, "\t"))
		for _, row := range t.Strings() {
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}
