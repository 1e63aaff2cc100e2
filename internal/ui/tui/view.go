package tui

import (
	"fmt"
	"strings"
	"time"
)

func renderView(m Model) string {
	var b strings.Builder

	renderHeader(&b, m)
	renderPhases(&b, m)

	if m.Waiting != "" {
		b.WriteString(warningStyle.Render(fmt.Sprintf("  %s %s", currentSpinner(m.SpinnerFrame), m.Waiting)))
		b.WriteString("\n")
	}

	renderActivity(&b, m)
	renderFooter(&b, m)

	return b.String()
}

func renderHeader(b *strings.Builder, m Model) {
	title := fmt.Sprintf("hsmctl: %s", m.ClusterName)
	if m.Region != "" {
		title += fmt.Sprintf(" (%s)", m.Region)
	}
	b.WriteString(titleStyle.Render(title))

	status := " "
	switch {
	case m.Err != nil:
		status += failedStyle.Render(fmt.Sprintf("Error: %v", m.Err))
	case m.Done && m.Mode == "destroy":
		status += readyStyle.Render("Destroyed")
	case m.Done:
		status += readyStyle.Render("Active")
	default:
		status += activeStyle.Render(currentSpinner(m.SpinnerFrame)+" ") + warningStyle.Render("Provisioning...")
	}
	b.WriteString(status)
	b.WriteString("\n")
}

func renderPhases(b *strings.Builder, m Model) {
	b.WriteString(sectionStyle.Render("  Phases"))
	b.WriteString("\n")

	for _, phase := range m.Phases {
		var mark, name string
		switch {
		case phase.Err != nil:
			mark = failedStyle.Render(crossMark)
			name = failedStyle.Render(phase.Name)
		case phase.Done:
			mark = readyStyle.Render(checkMark)
			name = dimStyle.Render(phase.Name)
		case phase.Active:
			mark = warningStyle.Render(currentSpinner(m.SpinnerFrame))
			name = activeStyle.Render(phase.Name)
		default:
			mark = dimStyle.Render(pending)
			name = dimStyle.Render(phase.Name)
		}
		fmt.Fprintf(b, "  %s %s\n", mark, name)
		if phase.Err != nil {
			fmt.Fprintf(b, "       %s\n", failedStyle.Render(phase.Err.Error()))
		}
	}
}

func renderActivity(b *strings.Builder, m Model) {
	if len(m.Activity) == 0 {
		return
	}

	b.WriteString(sectionStyle.Render("  Activity"))
	b.WriteString("\n")
	for _, line := range m.Activity {
		fmt.Fprintf(b, "  %s\n", dimStyle.Render(line))
	}
}

func renderFooter(b *strings.Builder, m Model) {
	elapsed := time.Since(m.StartTime).Round(time.Second)
	b.WriteString(footerStyle.Render(fmt.Sprintf("  elapsed %s | q to quit", elapsed)))
	b.WriteString("\n")
}
