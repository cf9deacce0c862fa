package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"github.com/denisogg/langgraph-ma/internal/orchestrator"
	"github.com/denisogg/langgraph-ma/pkg/models"
)

var (
	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	responseStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#45B7D1")).
			Padding(0, 1)
)

func printSection(title string) {
	fmt.Println(sectionStyle.Render(title))
}

func printStatus(symbol, message string, colorAttr color.Attribute) {
	c := color.New(colorAttr)
	fmt.Printf("%s %s\n", c.Sprint(symbol), message)
}

func renderEntities(entities models.Entities, intents []models.Intent) {
	printSection("Analysis")

	intentStrs := make([]string, len(intents))
	for i, in := range intents {
		intentStrs[i] = string(in)
	}
	fmt.Printf("  %s %s\n", labelStyle.Render("intents:"), strings.Join(intentStrs, ", "))

	categories := make([]string, 0, len(entities))
	for cat := range entities {
		categories = append(categories, cat)
	}
	sort.Strings(categories)
	for _, cat := range categories {
		fmt.Printf("  %s %s\n", labelStyle.Render(cat+":"), strings.Join(entities[cat], ", "))
	}
	fmt.Println()
}

func renderPlan(p *models.ExecutionPlan) {
	printSection("Execution Plan")
	fmt.Printf("  %s %s\n", labelStyle.Render("strategy:"), p.Strategy)
	fmt.Printf("  %s %s\n", labelStyle.Render("fusion:"), p.ContextFusion)
	fmt.Printf("  %s %s\n", labelStyle.Render("primary agent:"), p.PrimaryAgent)
	if len(p.AgentSequence) > 1 {
		fmt.Printf("  %s %s\n", labelStyle.Render("agent sequence:"), strings.Join(p.AgentSequence, " -> "))
	}
	if len(p.ToolsNeeded) > 0 {
		fmt.Printf("  %s %s\n", labelStyle.Render("tools:"), strings.Join(p.ToolsNeeded, ", "))
	}
	if len(p.KnowledgeNeeded) > 0 {
		fmt.Printf("  %s %s\n", labelStyle.Render("knowledge:"), strings.Join(p.KnowledgeNeeded, ", "))
	}

	fmt.Println()
	printSection("Components")
	for i, c := range p.Components {
		fmt.Printf("  %d. [%s] %s", i+1, c.ResourceType, c.ResourceID)
		if c.Intent != "" {
			fmt.Printf(" (%s)", c.Intent)
		}
		if len(c.Dependencies) > 0 {
			fmt.Printf(" after %s", strings.Join(c.Dependencies, ", "))
		}
		fmt.Println()
	}
	fmt.Println()
}

func renderReport(report *orchestrator.Report, showTrace bool) {
	if showTrace {
		printSection("Trace")
		for _, step := range report.Trace {
			symbol, attr := "✓", color.FgGreen
			if !step.OK {
				symbol, attr = "✗", color.FgRed
			}
			detail := ""
			if step.Detail != "" {
				detail = " " + labelStyle.Render(step.Detail)
			}
			printStatus(symbol, fmt.Sprintf("%d. %s %s (%s)%s",
				step.Step, step.Kind, step.ResourceID, step.Duration.Round(time.Millisecond), detail), attr)
		}
		fmt.Println()
	}

	fmt.Println(responseStyle.Render(report.FinalResponse))
}
