package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"sigs.k8s.io/yaml"

	"github.com/traksel/kreq/internal/quantity"
	"github.com/traksel/kreq/internal/report"
	"github.com/traksel/kreq/internal/util"
)

// maxNameColWidth caps the NAMESPACE/POD/CONTAINER column.
const maxNameColWidth = 80

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	goodStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD7AF"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAF00"))
	dangerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
	faintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C6C6C"))
)

// outputResult outputs the report in the specified format.
func outputResult(m *report.Model, format string) error {
	switch format {
	case "json":
		return outputJSON(m)
	case "yaml":
		return outputYAML(m)
	case "table":
		return outputTable(m)
	default:
		return fmt.Errorf("unknown output format %q (want table, json, or yaml)", format)
	}
}

func outputJSON(m *report.Model) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(m)
}

func outputYAML(m *report.Model) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func outputTable(m *report.Model) error {
	title := "KUBERNETES RESOURCES REPORT"
	if m.Namespace != "" {
		title += fmt.Sprintf(" (namespace: %s)", m.Namespace)
	}
	fmt.Println(titleStyle.Render(title))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	// The model keeps input order; the table sorts a copy by full name so
	// the output is stable regardless of API ordering.
	rows := make([]report.Row, len(m.Rows))
	copy(rows, m.Rows)
	sort.Slice(rows, func(i, j int) bool { return rows[i].FullName() < rows[j].FullName() })

	if m.Wide {
		fmt.Fprintln(w, "NAMESPACE/POD/CONTAINER\tNODE\tCPU (orig)\tMEM (orig)\tCPU (m)\tMEM (MiB)")
	} else {
		fmt.Fprintln(w, "NAMESPACE/POD/CONTAINER\tCPU (orig)\tMEM (orig)\tCPU (m)\tMEM (MiB)")
	}
	for _, r := range rows {
		name := util.Truncate(r.FullName(), maxNameColWidth)
		if m.Wide {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%dm\t%.1fMi\n",
				name, r.Node, displayRaw(r.CPURaw, r.CPUSet), displayRaw(r.MemoryRaw, r.MemorySet),
				r.CPUMillicores, quantity.MiB(r.MemoryBytes))
		} else {
			fmt.Fprintf(w, "%s\t%s\t%s\t%dm\t%.1fMi\n",
				name, displayRaw(r.CPURaw, r.CPUSet), displayRaw(r.MemoryRaw, r.MemorySet),
				r.CPUMillicores, quantity.MiB(r.MemoryBytes))
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if m.Wide {
		if err := outputNodeTable(m.Nodes); err != nil {
			return err
		}
	}

	fmt.Println()
	fmt.Println(titleStyle.Render("SUMMARY:"))
	fmt.Printf("Total Container CPU Requests: %dm (%.2f cores)\n",
		m.Totals.CPUMillicores, quantity.Cores(m.Totals.CPUMillicores))
	fmt.Printf("Total Container Memory Requests: %.1fMiB (%.2fGiB)\n",
		quantity.MiB(m.Totals.MemoryBytes), quantity.GiB(m.Totals.MemoryBytes))

	if m.Wide && m.NodeTotals != nil {
		nt := m.NodeTotals
		fmt.Println()
		fmt.Println("Cluster Worker Node Resources:")
		fmt.Printf("Total Allocatable CPU: %dm (%.2f cores)\n",
			nt.CPUAllocatable, quantity.Cores(nt.CPUAllocatable))
		fmt.Printf("Total Allocatable Memory: %.1fMiB (%.2fGiB)\n",
			quantity.MiB(nt.MemoryAllocatable), quantity.GiB(nt.MemoryAllocatable))
		fmt.Printf("Total Node Capacity CPU: %dm (%.2f cores)\n",
			nt.CPUCapacity, quantity.Cores(nt.CPUCapacity))
		fmt.Printf("Total Node Capacity Memory: %.1fMiB (%.2fGiB)\n",
			quantity.MiB(nt.MemoryCapacity), quantity.GiB(nt.MemoryCapacity))
	}

	if m.Wide && m.Utilization != nil {
		fmt.Println()
		fmt.Printf("CPU Request Utilization: %s of allocatable\n", renderPercentage(m.Utilization.CPU))
		fmt.Printf("Memory Request Utilization: %s of allocatable\n", renderPercentage(m.Utilization.Memory))
	}

	if len(m.Warnings) > 0 {
		fmt.Println()
		fmt.Println(warnStyle.Render("WARNINGS:"))
		for _, warning := range m.Warnings {
			fmt.Printf("- %s: cannot parse %s %q: %s\n",
				warning.Entity, warning.Field, warning.Value, warning.Reason)
		}
	}

	fmt.Printf("\nContainers processed: %d\n", len(m.Rows))
	return nil
}

func outputNodeTable(nodes []report.NodeRow) error {
	fmt.Println()
	fmt.Println(titleStyle.Render("NODE RESOURCES:"))
	if len(nodes) == 0 {
		fmt.Println("No worker node resources found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NODE NAME\tALLOC CPU (m)\tALLOC MEM (MiB)\tTOTAL CPU (m)\tTOTAL MEM (MiB)")
	for _, n := range nodes {
		fmt.Fprintf(w, "%s\t%dm\t%.1fMi\t%dm\t%.1fMi\n",
			n.Name,
			n.CPUAllocatable, quantity.MiB(n.MemoryAllocatable),
			n.CPUCapacity, quantity.MiB(n.MemoryCapacity))
	}
	return w.Flush()
}

// displayRaw renders an original quantity string, or "N/A" when the request
// was never set (distinct from an explicit "0").
func displayRaw(raw string, set bool) string {
	if !set {
		return "N/A"
	}
	return raw
}

// renderPercentage colors a utilization value by how much of the cluster's
// allocatable resources it claims.
func renderPercentage(p report.Percentage) string {
	switch {
	case !p.Defined:
		return faintStyle.Render(p.String())
	case p.Value >= 80:
		return dangerStyle.Render(p.String())
	case p.Value >= 50:
		return warnStyle.Render(p.String())
	default:
		return goodStyle.Render(p.String())
	}
}
