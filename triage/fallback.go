package triage

import (
	"strings"

	"github.com/carecompass/carecompass-api/schema"
)

// Keyword sets for the deterministic classifier. The severe set is tested
// first so that a message matching both vocabularies resolves toward the
// more urgent outcome, never the reverse.
var severeKeywords = []string{
	"chest pain",
	"can't breathe",
	"difficulty breathing",
	"severe bleeding",
	"unconscious",
	"stroke",
	"heart attack",
	"radiating",
	"crushing",
}

var moderateKeywords = []string{
	"fever",
	"persistent",
	"3 days",
	"worsening",
	"infection",
	"vomiting",
	"dehydrated",
	"high temperature",
}

// Fallback classifies symptoms without the upstream model. It is a total,
// pure function: every input yields a fully valid TriageResult, so the
// pipeline never hard-fails just because the model is unreachable. The same
// templates back the standalone mock mode.
func Fallback(symptoms string) *schema.TriageResult {
	lowered := strings.ToLower(symptoms)

	if containsAny(lowered, severeKeywords) {
		return severeResult()
	}
	if containsAny(lowered, moderateKeywords) {
		return moderateResult()
	}
	return minorResult()
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

func minorResult() *schema.TriageResult {
	return &schema.TriageResult{
		UrgencyLevel:           schema.UrgencyClinic,
		UrgencyColor:           schema.UrgencyColorOf[schema.UrgencyClinic],
		RecommendedCareType:    "Primary Care Clinic",
		ReasoningSummary:       "Your symptoms suggest a minor condition that can be safely evaluated at a primary care clinic. These symptoms are typically manageable with over-the-counter treatments or a routine doctor visit. No immediate emergency care is needed.",
		DoctorSummary:          "Patient presents with mild symptoms including headache. No fever, no neurological symptoms, no red flags observed. Recommend evaluation for potential tension headache or minor viral illness. Consider OTC pain relief and follow-up if symptoms persist beyond 48-72 hours.",
		RedFlags:               []string{},
		FinancialCategory:      schema.FinancialLow,
		FinancialExplanation:   "A primary care visit is the most cost-effective option for your symptoms. With good insurance, expect a copay of $20-50. Without insurance, community health centers offer sliding scale fees based on income, typically $50-150 for a visit.",
		SuggestedSearchQueries: []string{"primary care clinic", "family doctor", "community health center"},
	}
}

func moderateResult() *schema.TriageResult {
	return &schema.TriageResult{
		UrgencyLevel:        schema.UrgencyUrgentCare,
		UrgencyColor:        schema.UrgencyColorOf[schema.UrgencyUrgentCare],
		RecommendedCareType: "Urgent Care Center",
		ReasoningSummary:    "Your symptoms warrant prompt medical attention but are not immediately life-threatening. An urgent care center can provide same-day evaluation and treatment. They have diagnostic capabilities like labs and X-rays that may be needed to properly assess your condition.",
		DoctorSummary:       "Patient reports persistent fever of 102F for 3 days with body aches and fatigue. Fever responds to antipyretics but recurs. No respiratory symptoms noted. Requires evaluation to rule out bacterial infection, possible need for cultures or bloodwork. Monitor for worsening symptoms.",
		RedFlags: []string{
			"Fever persisting beyond 3 days",
			"Temperature exceeding 102F",
		},
		FinancialCategory:      schema.FinancialMedium,
		FinancialExplanation:   "Urgent care visits typically cost $100-200 with insurance (after copay) or $150-300 without insurance. This is significantly less expensive than an ER visit while still providing prompt professional care. Many urgent care centers offer payment plans.",
		SuggestedSearchQueries: []string{"urgent care center", "walk-in clinic", "immediate care"},
	}
}

func severeResult() *schema.TriageResult {
	return &schema.TriageResult{
		UrgencyLevel:        schema.UrgencyER,
		UrgencyColor:        schema.UrgencyColorOf[schema.UrgencyER],
		RecommendedCareType: "Emergency Room - SEEK IMMEDIATE CARE",
		ReasoningSummary:    "YOUR SYMPTOMS REQUIRE IMMEDIATE EMERGENCY MEDICAL ATTENTION. Chest pain with radiating arm pain and shortness of breath are classic warning signs of a potential heart attack. Time is critical - call 911 or go to the nearest emergency room immediately. Do not drive yourself.",
		DoctorSummary:       "CRITICAL: Patient experiencing acute chest pain with pressure sensation, radiation to left arm, associated dyspnea and nausea. Classic presentation concerning for acute coronary syndrome. Requires immediate cardiac workup including ECG, troponins, and continuous monitoring. High-risk presentation requiring emergent evaluation.",
		RedFlags: []string{
			"Chest pain with pressure sensation",
			"Pain radiating to left arm",
			"Shortness of breath",
			"Nausea accompanying chest pain",
			"POSSIBLE HEART ATTACK - CALL 911",
		},
		FinancialCategory:      schema.FinancialHigh,
		FinancialExplanation:   "Emergency room care is expensive but this is a potentially life-threatening situation where cost should not be a barrier. Federal law requires ERs to provide stabilizing care regardless of ability to pay. Hospitals have financial assistance programs and payment plans. Your life is the priority - seek care immediately.",
		SuggestedSearchQueries: []string{"emergency room", "hospital ER", "emergency services"},
	}
}
