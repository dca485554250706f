package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/chazu/brep/pkg/brep"
	"github.com/chazu/brep/pkg/cutcell"
	"github.com/chazu/brep/pkg/mesh"
)

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "brep",
		Short:         "Classify points and mesh elements against a boundary",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "configuration file (.toml, .yaml or .yml)")
	pf.Float64Var(&a.tolerance, "tolerance", 0, "geometric tolerance, overrides the configuration")
	pf.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		newClassifyCmd(a),
		newBisectCmd(a),
		newProjectCmd(a),
		newGridCmd(a),
		newPreviewCmd(a),
	)
	return root
}

// --- point queries ---

func newClassifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "classify x,y,z...",
		Short: "Evaluate the shape at points and classify them as a group",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			points, err := parsePoints(args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			tol := a.ls.GetTolerance()
			for _, p := range points {
				on, err := a.ls.IsOnBoundary(p, tol)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s value=%g inside=%t boundary=%t\n", formatPoint(p), a.ls.GetValue(p), a.ls.IsInside(p), on)
			}
			status, err := a.ls.CutStatus(points)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "status: %s\n", status)
			return nil
		},
	}
}

func newBisectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "bisect x,y,z x,y,z",
		Short: "Find where the boundary crosses a segment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			points, err := parsePoints(args)
			if err != nil {
				return err
			}
			root, err := a.ls.Bisect(points[0], points[1], a.ls.GetTolerance())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "root: %s value=%g\n", formatPoint(root), a.ls.GetValue(root))
			return nil
		},
	}
}

func newProjectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "project x,y,z",
		Short: "Project a point onto the boundary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parsePoint(args[0])
			if err != nil {
				return err
			}
			proj, err := a.ls.ProjectOnSurface(p)
			if err != nil {
				return err
			}
			n, err := a.ls.GetNormal(proj)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "projection: %s normal: %s\n", formatPoint(proj), formatPoint(n))
			return nil
		},
	}
}

// --- mesh runs ---

func newGridCmd(a *app) *cobra.Command {
	var (
		cells         int
		size          float64
		withInterface bool
	)
	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Classify the elements of a structured lattice centred at the origin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cells <= 0 || !(size > 0) {
				return errors.Errorf("grid needs positive --cells and --size, got %d and %g", cells, size)
			}
			h := size / 2
			var m *mesh.Mesh
			if a.ls.WorkingSpaceDimension() == 2 {
				m = mesh.Lattice2D(cells, cells, [2]float64{-h, -h}, [2]float64{h, h})
			} else {
				m = mesh.Lattice3D(cells, cells, cells, [3]float64{-h, -h, -h}, [3]float64{h, h, h})
			}
			c := &cutcell.Classifier{
				BRep:          a.ls,
				Configuration: a.sel,
				Sampling:      a.cfg.Sampling,
				Workers:       a.cfg.Workers,
				Logger:        a.logger,
			}
			report, err := c.Classify(cmd.Context(), m.Elements)
			if err != nil {
				return err
			}
			counts := report.Counts()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "elements: %d cut: %d in: %d out: %d\n",
				len(report.Results), counts[brep.Cut], counts[brep.In], counts[brep.Out])
			if !withInterface {
				return nil
			}
			for _, id := range report.WithStatus(brep.Cut) {
				points, err := cutcell.InterfacePoints(a.ls, m.Elements[id], a.sel, a.ls.GetTolerance())
				if err != nil {
					return err
				}
				for _, ip := range points {
					fmt.Fprintf(out, "element %d edge %v: %s normal %s\n", id, ip.Edge, formatPoint(ip.Point), formatPoint(ip.Normal))
				}
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&cells, "cells", 8, "cells per axis")
	f.Float64Var(&size, "size", 4, "edge length of the lattice")
	f.BoolVar(&withInterface, "interface", false, "print where the boundary crosses cut element edges")
	f.IntVar(&a.sampling, "sampling", 0, "interior samples per element, overrides the configuration")
	f.IntVar(&a.workers, "workers", 0, "concurrent classifications, overrides the configuration")
	return cmd
}

// meshData is the JSON form of a preview mesh.
type meshData struct {
	Name      string    `json:"name"`
	Triangles int       `json:"triangles"`
	Min       []float32 `json:"min"`
	Max       []float32 `json:"max"`
	Vertices  []float32 `json:"vertices,omitempty"`
	Indices   []uint32  `json:"indices,omitempty"`
}

func newPreviewCmd(a *app) *cobra.Command {
	var (
		extent float64
		full   bool
	)
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Mesh the zero set with marching cubes and print it as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !(extent > 0) {
				return errors.Errorf("preview needs a positive --extent, got %g", extent)
			}
			h := extent / 2
			solid := a.kernel.FromLevelSet(a.ls, [3]float64{-h, -h, -h}, [3]float64{h, h, h})
			m, err := a.kernel.ToMesh(solid)
			if err != nil {
				return errors.Wrap(err, "preview")
			}
			min, max := m.Bounds()
			data := meshData{
				Name:      m.Name,
				Triangles: m.TriangleCount(),
				Min:       min[:],
				Max:       max[:],
			}
			if full {
				data.Vertices = m.Vertices
				data.Indices = m.Indices
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(data)
		},
	}
	cmd.Flags().Float64Var(&extent, "extent", 4, "edge length of the meshed box centred at the origin")
	cmd.Flags().BoolVar(&full, "full", false, "include vertices and indices")
	return cmd
}

// --- argument parsing ---

// parsePoint reads "x,y" or "x,y,z"; a missing z is zero.
func parsePoint(s string) (brep.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) < 2 || len(parts) > 3 {
		return brep.Point{}, errors.Errorf("point %q: want x,y or x,y,z", s)
	}
	var c [3]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return brep.Point{}, errors.Wrapf(err, "point %q", s)
		}
		c[i] = v
	}
	return brep.NewPoint(c[0], c[1], c[2]), nil
}

func parsePoints(args []string) ([]brep.Point, error) {
	points := make([]brep.Point, len(args))
	for i, arg := range args {
		p, err := parsePoint(arg)
		if err != nil {
			return nil, err
		}
		points[i] = p
	}
	return points, nil
}

func formatPoint(p brep.Point) string {
	return fmt.Sprintf("(%g, %g, %g)", p.X, p.Y, p.Z)
}
