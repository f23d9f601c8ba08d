// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/Up14/Lead-Finder/pkg/types"
)

// renderLeadTable formats ranked leads as a terminal table.
func renderLeadTable(leads []types.Lead) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	tw.AppendHeader(table.Row{"Rank", "Name", "Title", "Company", "Score", "Tier", "Email"})

	for _, lead := range leads {
		title := lead.LinkedInTitle
		if title == "" {
			title = lead.Title
		}
		tw.AppendRow(table.Row{
			strconv.Itoa(lead.Rank),
			truncate(lead.Name, 28),
			truncate(title, 32),
			truncate(lead.Company, 28),
			fmt.Sprintf("%d (%s)", lead.PropensityScore, breakdownSummary(lead.ScoreBreakdown)),
			string(lead.PriorityLevel),
			truncate(lead.Email, 30),
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 5, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}

// breakdownSummary compresses the per-rule scores into "30+40+20+15+10"
// form so the table shows where a score came from.
func breakdownSummary(b types.ScoreBreakdown) string {
	return fmt.Sprintf("%d+%d+%d+%d+%d",
		b.RoleFit, b.ScientificIntent, b.CompanyIntent, b.Technographic, b.Location)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
