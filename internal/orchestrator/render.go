package orchestrator

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"

	"copilot-orchestrator/internal/registry"
	"copilot-orchestrator/pkg/models"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

// truncationMarker closes a bounded plan preview.
const truncationMarker = "…"

func renderCreated(topic *models.Topic, created []string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Created topic %q", topic.Name)))
	b.WriteString("\n\nScaffold:\n")
	for _, path := range created {
		fmt.Fprintf(&b, "  %s\n", path)
	}
	b.WriteString("\nThis is now the active topic.\n")
	return b.String()
}

func renderTopicTable(infos []registry.TopicInfo) string {
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"Topic", "Pending", "Active"})
	for _, info := range infos {
		active := ""
		if info.Active {
			active = "*"
		}
		tw.AppendRow(table.Row{info.Name, info.PendingDelegations, active})
	}
	return tw.Render()
}

func renderDigest(topic *models.Topic, delegations []models.Delegation, previewChars int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Switched to topic %q", topic.Name)))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Plan"))
	b.WriteString("\n")
	if topic.Plan == "" {
		b.WriteString("(no plan yet)\n")
	} else {
		b.WriteString(truncate(strings.TrimSpace(topic.Plan), previewChars))
		b.WriteString("\n")
	}

	done, total := taskProgress(topic.Tasks)
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Tasks"))
	fmt.Fprintf(&b, "\n%d/%d complete\n", done, total)

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Delegations"))
	b.WriteString("\n")
	if len(delegations) == 0 {
		b.WriteString("(none)\n")
		return b.String()
	}

	groups := groupByStatus(delegations)
	appendGroup(&b, "Pending", groups[models.DelegationPending])
	appendGroup(&b, "Complete", groups[models.DelegationComplete])
	// In-progress and blocked work still shows up in the digest even
	// though the short form only promises pending/complete.
	appendGroup(&b, "In progress", groups[models.DelegationInProgress])
	appendGroup(&b, "Blocked", groups[models.DelegationBlocked])
	return b.String()
}

func renderDelegated(topicName string, d *models.Delegation, warning string, blocking bool) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Delegated to %s", d.Agent)))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Topic:      %s\n", topicName)
	fmt.Fprintf(&b, "Delegation: %s\n", d.ID)
	fmt.Fprintf(&b, "Model tier: %s\n", d.ModelTier)
	fmt.Fprintf(&b, "Task:       %s\n", d.Task)
	if warning != "" {
		fmt.Fprintf(&b, "\nWarning: %s\n", warning)
	}
	if blocking {
		b.WriteString("\nNote: blocking was requested, but delegations run asynchronously; use the watch operation to wait for the result.\n")
	}
	return b.String()
}

func renderDelegationReport(topicName string, delegations []models.Delegation) string {
	groups := groupByStatus(delegations)

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Delegations for %q", topicName)))
	b.WriteString("\n\n")

	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"Status", "Agent", "Delegation", "Task"})
	for _, status := range []models.DelegationStatus{
		models.DelegationComplete,
		models.DelegationPending,
		models.DelegationInProgress,
		models.DelegationBlocked,
	} {
		for _, d := range groups[status] {
			tw.AppendRow(table.Row{string(status), d.Agent, d.ID, oneLine(d.Task)})
		}
	}
	b.WriteString(tw.Render())

	fmt.Fprintf(&b, "\n\n%d complete, %d pending, %d in progress, %d blocked\n",
		len(groups[models.DelegationComplete]),
		len(groups[models.DelegationPending]),
		len(groups[models.DelegationInProgress]),
		len(groups[models.DelegationBlocked]))
	return b.String()
}

func appendGroup(b *strings.Builder, label string, group []models.Delegation) {
	if len(group) == 0 {
		return
	}
	fmt.Fprintf(b, "%s:\n", label)
	for _, d := range group {
		fmt.Fprintf(b, "  - [%s] %s\n", d.Agent, oneLine(d.Task))
	}
}

func groupByStatus(delegations []models.Delegation) map[models.DelegationStatus][]models.Delegation {
	groups := make(map[models.DelegationStatus][]models.Delegation)
	for _, d := range delegations {
		groups[d.Status] = append(groups[d.Status], d)
	}
	return groups
}

// truncate bounds text to max runes, closing with the truncation marker
// when anything was cut.
func truncate(text string, max int) string {
	if max <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + truncationMarker
}

// taskProgress counts checklist markers in free-form task text.
func taskProgress(tasks string) (done, total int) {
	for _, line := range strings.Split(tasks, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "- [x]"), strings.HasPrefix(trimmed, "- [X]"),
			strings.HasPrefix(trimmed, "* [x]"), strings.HasPrefix(trimmed, "* [X]"):
			done++
			total++
		case strings.HasPrefix(trimmed, "- [ ]"), strings.HasPrefix(trimmed, "* [ ]"):
			total++
		}
	}
	return done, total
}

func oneLine(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
