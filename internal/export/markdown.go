package export

import (
	"fmt"
	"strings"

	"github.com/ai-bridge/backend/internal/engine"
)

// RenderMarkdown serializes a snapshot into the human-readable requirements
// document. Pure formatting over engine output; no computation happens
// here.
func RenderMarkdown(snapshot *engine.Snapshot, maxMatches int) string {
	var sb strings.Builder

	sb.WriteString("# AI導入要件サマリー\n\n")
	fmt.Fprintf(&sb, "要件定義の進捗: %d%%\n\n", snapshot.Document.CompletionRate)

	sb.WriteString("## セクション状況\n\n")
	sb.WriteString("| セクション | 状況 |\n|---|---|\n")
	for _, section := range snapshot.Document.Sections {
		fmt.Fprintf(&sb, "| %s | %s |\n", section.Title, statusLabels[section.Status])
	}
	sb.WriteString("\n")

	est := snapshot.Estimate
	sb.WriteString("## 概算費用\n\n")
	fmt.Fprintf(&sb, "**%s 〜 %s**（信頼度 %d%%）\n\n",
		formatCurrency(est.TotalMin), formatCurrency(est.TotalMax), est.ConfidenceLevel)

	sb.WriteString("| 項目 | 下限 | 上限 |\n|---|---|---|\n")
	for _, item := range est.Breakdown {
		label, ok := categoryLabels[item.Category]
		if !ok {
			label = item.Label
		}
		fmt.Fprintf(&sb, "| %s | %s | %s |\n",
			label, formatCurrency(item.MinCost), formatCurrency(item.MaxCost))
	}
	sb.WriteString("\n")

	if len(est.Factors) > 0 {
		sb.WriteString("### 費用に影響した要因\n\n")
		for _, factor := range est.Factors {
			fmt.Fprintf(&sb, "- %s\n", labelOr(factorLabels, factor))
		}
		sb.WriteString("\n")
	}

	if len(est.Comparisons) > 0 {
		sb.WriteString("### 業界平均との比較\n\n")
		for _, cmp := range est.Comparisons {
			fmt.Fprintf(&sb, "- %s: %s\n", labelOr(industryLabels, cmp.Industry), formatCurrency(cmp.AvgCost))
		}
		sb.WriteString("\n")
	}

	matches := snapshot.Matches
	if maxMatches > 0 && len(matches) > maxMatches {
		matches = matches[:maxMatches]
	}
	if len(matches) > 0 {
		sb.WriteString("## 候補ベンダー\n\n")
		for i, m := range matches {
			fmt.Fprintf(&sb, "### %d. %s（マッチ度 %d）\n\n", i+1, m.VendorName, m.MatchScore)
			for _, strength := range m.Strengths {
				fmt.Fprintf(&sb, "- %s\n", labelOr(strengthLabels, strength))
			}
			if len(m.SpecialtiesOverlap) > 0 {
				overlap := make([]string, 0, len(m.SpecialtiesOverlap))
				for _, code := range m.SpecialtiesOverlap {
					overlap = append(overlap, labelOr(useCaseLabels, code))
				}
				fmt.Fprintf(&sb, "- 対応ユースケース: %s\n", strings.Join(overlap, "、"))
			}
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// formatCurrency renders an amount in man-yen units when it divides evenly,
// plain yen otherwise.
func formatCurrency(amount int64) string {
	if amount >= 10_000 && amount%10_000 == 0 {
		return fmt.Sprintf("%d万円", amount/10_000)
	}
	return fmt.Sprintf("%d円", amount)
}
