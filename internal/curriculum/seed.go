package curriculum

import "fmt"

// The seeded catalog: four units per grade track, each unit built from two
// lessons, one review and one checkpoint over the same skill set. Adding
// units or skills never breaks stored progress, records are keyed by ID.

func makeUnit(trackKey string, idx int, title string, skillIDs []string) Unit {
	unitID := fmt.Sprintf("%s_u%d", trackKey, idx)
	nodes := []Node{
		{ID: unitID + "_l1", UnitID: unitID, TrackKey: trackKey, Kind: NodeLesson, Title: "Lesson 1", SkillIDs: skillIDs},
		{ID: unitID + "_l2", UnitID: unitID, TrackKey: trackKey, Kind: NodeLesson, Title: "Lesson 2", SkillIDs: skillIDs},
		{ID: unitID + "_r1", UnitID: unitID, TrackKey: trackKey, Kind: NodeReview, Title: "Review", SkillIDs: skillIDs},
		{ID: unitID + "_b1", UnitID: unitID, TrackKey: trackKey, Kind: NodeCheckpoint, Title: "Checkpoint (80%)", SkillIDs: skillIDs},
	}
	return Unit{ID: unitID, TrackKey: trackKey, Title: title, SkillIDs: skillIDs, Nodes: nodes}
}

func seedTracks() []Track {
	return []Track{
		{Key: "g1", GradeYear: 1, Units: []Unit{
			makeUnit("g1", 1, "Counting and successor", []string{"g1_count_succ"}),
			makeUnit("g1", 2, "Addition to 10", []string{"g1_add_10"}),
			makeUnit("g1", 3, "Subtraction to 10", []string{"g1_sub_10"}),
			makeUnit("g1", 4, "Patterns", []string{"g1_patterns"}),
		}},
		{Key: "g2", GradeYear: 2, Units: []Unit{
			makeUnit("g2", 1, "Place value", []string{"g2_place_value"}),
			makeUnit("g2", 2, "Addition to 100", []string{"g2_add_100"}),
			makeUnit("g2", 3, "Subtraction to 100", []string{"g2_sub_100"}),
			makeUnit("g2", 4, "Multiplication as groups", []string{"g2_mul_groups"}),
		}},
		{Key: "g3", GradeYear: 3, Units: []Unit{
			makeUnit("g3", 1, "Times tables 2-5", []string{"g3_mul_facts_2_5"}),
			makeUnit("g3", 2, "Division as sharing", []string{"g3_div_sharing"}),
			makeUnit("g3", 3, "Fractions: halves and thirds", []string{"g3_frac_halves"}),
			makeUnit("g3", 4, "Area and perimeter (rectangle)", []string{"g3_area_rect"}),
		}},
		{Key: "g4", GradeYear: 4, Units: []Unit{
			makeUnit("g4", 1, "Times tables 6-9", []string{"g4_mul_facts_6_9"}),
			makeUnit("g4", 2, "Two-digit multiplication", []string{"g4_mul_2digit"}),
			makeUnit("g4", 3, "Equivalent fractions", []string{"g4_frac_equiv"}),
			makeUnit("g4", 4, "Decimals: tenths and hundredths", []string{"g4_decimals_01"}),
		}},
		{Key: "g5", GradeYear: 5, Units: []Unit{
			makeUnit("g5", 1, "Two-digit division", []string{"g5_div_2digit"}),
			makeUnit("g5", 2, "Adding like fractions", []string{"g5_frac_add_like"}),
			makeUnit("g5", 3, "Decimals: add and subtract", []string{"g5_dec_addsub"}),
			makeUnit("g5", 4, "Percentages: first steps", []string{"g5_percent_intro"}),
		}},
		{Key: "g6", GradeYear: 6, Units: []Unit{
			makeUnit("g6", 1, "Order of operations", []string{"g6_order_ops"}),
			makeUnit("g6", 2, "Comparing decimals", []string{"g6_dec_compare"}),
			makeUnit("g6", 3, "Equivalent fractions", []string{"g6_frac_equiv"}),
			makeUnit("g6", 4, "Percentages 10/25/50", []string{"g6_percent_simple"}),
		}},
		{Key: "g7", GradeYear: 7, Units: []Unit{
			makeUnit("g7", 1, "Integer operations", []string{"g7_int_ops"}),
			makeUnit("g7", 2, "Proportionality", []string{"g7_prop"}),
			makeUnit("g7", 3, "One-step equations", []string{"g7_eq_1step"}),
			makeUnit("g7", 4, "Basic areas", []string{"g7_area"}),
		}},
		{Key: "g8", GradeYear: 8, Units: []Unit{
			makeUnit("g8", 1, "Algebra: simplify", []string{"g8_algebra_simplify"}),
			makeUnit("g8", 2, "Linear equations", []string{"g8_eq_linear"}),
			makeUnit("g8", 3, "Functions: evaluate", []string{"g8_functions_intro"}),
			makeUnit("g8", 4, "Powers", []string{"g8_powers"}),
		}},
		{Key: "g9", GradeYear: 9, Units: []Unit{
			makeUnit("g9", 1, "Simple linear systems", []string{"g9_systems"}),
			makeUnit("g9", 2, "Quadratics: factoring", []string{"g9_quadratic"}),
			makeUnit("g9", 3, "Similarity", []string{"g9_similarity"}),
			makeUnit("g9", 4, "Basic probability", []string{"g9_probability"}),
		}},
	}
}

func seedSkillTitles() map[string]string {
	return map[string]string{
		"g1_count_succ": "Counting: successor",
		"g1_add_10":     "Addition to 10",
		"g1_sub_10":     "Subtraction to 10",
		"g1_patterns":   "Simple patterns",

		"g2_place_value": "Place value (tens/ones)",
		"g2_add_100":     "Addition to 100",
		"g2_sub_100":     "Subtraction to 100",
		"g2_mul_groups":  "Multiplication as groups",

		"g3_mul_facts_2_5": "Times tables 2-5",
		"g3_div_sharing":   "Division: sharing",
		"g3_frac_halves":   "Fractions: halves/thirds",
		"g3_area_rect":     "Area/perimeter: rectangle",

		"g4_mul_facts_6_9": "Times tables 6-9",
		"g4_mul_2digit":    "Multiplication (2 digits)",
		"g4_frac_equiv":    "Fractions: equivalence",
		"g4_decimals_01":   "Decimals: tenths/hundredths",

		"g5_div_2digit":    "Division (2 digits)",
		"g5_frac_add_like": "Fractions: same-denominator sums",
		"g5_dec_addsub":    "Decimals: add/subtract",
		"g5_percent_intro": "Percentages: first steps",

		"g6_order_ops":      "Order of operations",
		"g6_dec_compare":    "Decimals: compare",
		"g6_frac_equiv":     "Fractions: equivalence",
		"g6_percent_simple": "Percentages 10/25/50",

		"g7_int_ops":  "Integers: operations",
		"g7_prop":     "Proportionality",
		"g7_eq_1step": "Equations: one step",
		"g7_area":     "Basic areas",

		"g8_algebra_simplify": "Algebra: simplify",
		"g8_eq_linear":        "Linear equations",
		"g8_functions_intro":  "Functions: evaluate",
		"g8_powers":           "Powers",

		"g9_systems":     "Linear systems (simple)",
		"g9_quadratic":   "Quadratics: form/factoring",
		"g9_similarity":  "Similarity",
		"g9_probability": "Basic probability",

		"ob_patterns": "Olympiad: patterns",
		"ob_parity":   "Olympiad: parity",
		"ob_counting": "Olympiad: counting",
	}
}
