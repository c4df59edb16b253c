package main

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/stat"

	"github.com/Edward-VS/Kerkers-sub000/internal/protocol"
	"github.com/Edward-VS/Kerkers-sub000/internal/web/views"
)

// printSnapshot writes every floor of s as text, top floor first, each
// followed by its temperature spread.
func printSnapshot(out io.Writer, s *protocol.Snapshot) error {
	if _, err := fmt.Fprintf(out, "%s (%dx%dx%d), %d squares, %d thermal groups\n",
		s.Name, s.Size.X, s.Size.Y, s.Size.Z, len(s.Squares), s.ThermalGroups); err != nil {
		return err
	}
	for z := s.Size.Z - 1; z >= 0; z-- {
		if _, err := fmt.Fprintf(out, "\nfloor %d\n", z); err != nil {
			return err
		}
		for _, row := range views.LayerRows(s, z) {
			if _, err := fmt.Fprintln(out, row); err != nil {
				return err
			}
		}
		if summary := temperatureSummary(s.Layer(z)); summary != "" {
			if _, err := fmt.Fprintln(out, summary); err != nil {
				return err
			}
		}
	}
	return nil
}

func temperatureSummary(squares []protocol.SquareLite) string {
	if len(squares) == 0 {
		return ""
	}
	temps := make([]float64, len(squares))
	for i, sq := range squares {
		temps[i] = float64(sq.Temperature)
	}
	mean, std := stat.MeanStdDev(temps, nil)
	if len(temps) < 2 {
		std = 0
	}
	return fmt.Sprintf("temperature mean %.1f std %.1f", mean, std)
}
