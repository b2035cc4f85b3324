package export

import (
	"github.com/ai-bridge/backend/internal/engine/estimate"
	"github.com/ai-bridge/backend/internal/engine/match"
	"github.com/ai-bridge/backend/internal/engine/spec"
)

// Japanese display labels for the engine's internal codes. The engine never
// sees these; they exist only at the presentation boundary.

var categoryLabels = map[estimate.Category]string{
	estimate.CategoryDevelopment:    "開発費",
	estimate.CategoryIntegration:    "システム連携費",
	estimate.CategoryInfrastructure: "インフラ費",
	estimate.CategorySupport:        "導入支援・保守費",
}

var industryLabels = map[string]string{
	"manufacturing": "製造業",
	"retail":        "小売業",
	"finance":       "金融業",
	"healthcare":    "医療・ヘルスケア",
	"logistics":     "物流業",
	"other":         "その他",
	"overall":       "全業種平均",
}

var useCaseLabels = map[string]string{
	"chatbot":                   "チャットボット",
	"document_automation":       "書類業務の自動化",
	"faq_support":               "FAQ・問い合わせ対応",
	"demand_forecast":           "需要予測",
	"predictive_maintenance":    "予知保全",
	"sales_analytics":           "営業・売上分析",
	"quality_inspection":        "外観検査",
	"image_recognition":         "画像認識",
	"realtime_monitoring":       "リアルタイム監視",
	"supply_chain_optimization": "サプライチェーン最適化",
	"dynamic_pricing":           "ダイナミックプライシング",
	"multi_system_optimization": "複数システム最適化",
}

var strengthLabels = map[string]string{
	match.StrengthIndustryExpertise: "業界知見が豊富",
	match.StrengthUseCaseFit:        "希望ユースケースに強い",
	match.StrengthBudgetFit:         "予算レンジが合致",
	match.StrengthTrackRecord:       "実績・評価が高い",
}

var factorLabels = map[string]string{
	estimate.FactorSecurityPremium:  "セキュリティ要件による上乗せ",
	estimate.FactorRushDelivery:     "短納期プレミアム",
	estimate.FactorDataPreparation:  "データ整備費用の上乗せ",
	estimate.FactorIntegrationScope: "外部システム連携の追加",
	estimate.FactorBudgetNarrowed:   "予算帯に合わせてレンジを調整",
	estimate.FactorBudgetMismatch:   "算出レンジが予算帯と乖離",
}

var statusLabels = map[spec.SectionStatus]string{
	spec.StatusEmpty:    "未入力",
	spec.StatusDraft:    "入力中",
	spec.StatusComplete: "完了",
}

func labelOr(labels map[string]string, code string) string {
	if label, ok := labels[code]; ok {
		return label
	}
	return code
}
