package questiongen

import (
	"fmt"
	"math/rand"
)

func init() {
	register("g1_count_succ", genCountSuccessor)
	register("g1_add_10", genAddTo(10, "g1_add_10"))
	register("g1_sub_10", genSubTo(10, "g1_sub_10"))
	register("g1_patterns", genPatternsFor("g1_patterns"))

	register("g2_place_value", genPlaceValue)
	register("g2_add_100", genAddTo(100, "g2_add_100"))
	register("g2_sub_100", genSubTo(100, "g2_sub_100"))
	register("g2_mul_groups", genMulGroups)

	register("g3_mul_facts_2_5", genMulFacts(2, 5, "g3_mul_facts_2_5"))
	register("g3_div_sharing", genDivSharing)
	register("g3_frac_halves", genFracHalves)
	register("g3_area_rect", genRectAreaFor("g3_area_rect"))

	register("g4_mul_facts_6_9", genMulFacts(6, 9, "g4_mul_facts_6_9"))
	register("g4_mul_2digit", genMul2Digit)
	register("g4_frac_equiv", genFracEquivFor("g4_frac_equiv"))
	register("g4_decimals_01", genDecimalsHundredths)

	register("g5_div_2digit", genDiv2Digit)
	register("g5_frac_add_like", genFracAddLike)
	register("g5_dec_addsub", genDecAddSub)
	register("g5_percent_intro", genPercentIntro)

	register("g6_order_ops", genOrderOps)
	register("g6_dec_compare", genDecCompare)
	register("g6_frac_equiv", genFracEquivFor("g6_frac_equiv"))
	register("g6_percent_simple", genPercentSimple)

	register("g7_int_ops", genIntOps)
	register("g7_prop", genProportion)
	register("g7_eq_1step", genEqOneStep)
	register("g7_area", genRectAreaFor("g7_area"))

	register("g8_algebra_simplify", genAlgebraSimplify)
	register("g8_eq_linear", genEqLinear)
	register("g8_functions_intro", genFunctionEval)
	register("g8_powers", genPowers)

	register("g9_systems", genSystems)
	register("g9_quadratic", genQuadratic)
	register("g9_similarity", genSimilarity)
	register("g9_probability", genProbability)

	register("ob_patterns", genPatternsFor("ob_patterns"))
	register("ob_parity", genParity)
	register("ob_counting", genCounting)
}

func genCountSuccessor(r *rand.Rand) *Question {
	n := randBetween(r, 0, 19)
	correct := n + 1
	return mcq(r, "g1_count_succ",
		fmt.Sprintf("Which number comes right after %d?", n),
		itoa(correct), itoas(numericDistractors(r, correct, 4)),
		"Hint: count one more.", ErrConcept)
}

func genAddTo(max int, skillID string) GenFunc {
	return func(r *rand.Rand) *Question {
		a := randBetween(r, 0, max)
		b := randBetween(r, 0, max)
		correct := a + b
		spread := max / 2
		if spread < 5 {
			spread = 5
		}
		return mcq(r, skillID,
			fmt.Sprintf("%d + %d = ?", a, b),
			itoa(correct), itoas(numericDistractors(r, correct, spread)),
			"Hint: put the two amounts together.", ErrFact)
	}
}

func genSubTo(max int, skillID string) GenFunc {
	return func(r *rand.Rand) *Question {
		a := randBetween(r, 0, max)
		b := randBetween(r, 0, a)
		correct := a - b
		spread := max / 2
		if spread < 5 {
			spread = 5
		}
		return mcq(r, skillID,
			fmt.Sprintf("%d - %d = ?", a, b),
			itoa(correct), itoas(numericDistractors(r, correct, spread)),
			"Hint: think of taking a part away.", ErrFact)
	}
}

func genPlaceValue(r *rand.Rand) *Question {
	n := randBetween(r, 10, 99)
	tens, ones := n/10, n%10
	askTens := r.Intn(2) == 0
	correct := ones
	prompt := fmt.Sprintf("In the number %d, what is the ones digit?", n)
	if askTens {
		correct = tens
		prompt = fmt.Sprintf("In the number %d, what is the tens digit?", n)
	}
	return mcq(r, "g2_place_value", prompt,
		itoa(correct), itoas(numericDistractors(r, correct, 4)),
		"Hint: split the number into tens and ones.", ErrPlace)
}

func genMulGroups(r *rand.Rand) *Question {
	groups := randBetween(r, 2, 6)
	each := randBetween(r, 2, 6)
	correct := groups * each
	return mcq(r, "g2_mul_groups",
		fmt.Sprintf("%d groups of %d make how many in total?", groups, each),
		itoa(correct), itoas(numericDistractors(r, correct, 6)),
		"Hint: it is a multiplication: groups times amount.", ErrConcept)
}

func genMulFacts(minA, maxA int, skillID string) GenFunc {
	return func(r *rand.Rand) *Question {
		a := randBetween(r, minA, maxA)
		b := randBetween(r, 0, 10)
		correct := a * b
		// Near-miss products: off-by-one in either factor.
		candidates := []string{
			itoa(a * minInt(b+1, 10)),
			itoa(a * maxInt(b-1, 0)),
			itoa((a + 1) * b),
		}
		distractors := stringDistinct(itoa(correct), candidates,
			itoas(numericDistractors(r, correct, 9)))
		return mcq(r, skillID,
			fmt.Sprintf("%d x %d = ?", a, b),
			itoa(correct), distractors,
			"Hint: use the times table or repeated addition.", ErrFact)
	}
}

func genDivSharing(r *rand.Rand) *Question {
	each := randBetween(r, 2, 6)
	groups := randBetween(r, 2, 6)
	total := each * groups
	return mcq(r, "g3_div_sharing",
		fmt.Sprintf("If %d sweets are split into groups of %d, how many groups are there?", total, each),
		itoa(groups), itoas(numericDistractors(r, groups, 4)),
		"Hint: division means sharing into equal parts.", ErrConcept)
}

func genFracHalves(r *rand.Rand) *Question {
	return mcq(r, "g3_frac_halves",
		"Which fraction means one half?",
		"1/2", []string{"1/3", "2/3", "3/4"},
		"Hint: a half splits the whole into 2 equal parts.", ErrConcept)
}

func genRectAreaFor(skillID string) GenFunc {
	return func(r *rand.Rand) *Question {
		w := randBetween(r, 2, 10)
		h := randBetween(r, 2, 10)
		correct := w * h
		candidates := []string{itoa(w + h), itoa(2 * (w + h)), itoa(correct + randBetween(r, 1, 8))}
		distractors := stringDistinct(itoa(correct), candidates,
			itoas(numericDistractors(r, correct, 8)))
		return mcq(r, skillID,
			fmt.Sprintf("A rectangle is %d wide and %d tall. What is its area?", w, h),
			itoa(correct), distractors,
			"Hint: area of a rectangle = width x height.", ErrConcept)
	}
}

func genMul2Digit(r *rand.Rand) *Question {
	a := randBetween(r, 10, 99)
	b := randBetween(r, 2, 9)
	correct := a * b
	return mcq(r, "g4_mul_2digit",
		fmt.Sprintf("%d x %d = ?", a, b),
		itoa(correct), itoas(numericDistractors(r, correct, 40)),
		"Hint: break it apart (23x4 = 20x4 + 3x4).", ErrProc)
}

func genFracEquivFor(skillID string) GenFunc {
	return func(r *rand.Rand) *Question {
		n := randBetween(r, 1, 4)
		d := randBetween(r, n+1, 6)
		k := randBetween(r, 2, 4)
		correct := frac(n*k, d*k)
		candidates := []string{
			frac(n+1, d),
			frac(n, d+1),
			frac(n*(k+1), d*k),
		}
		distractors := stringDistinct(correct, candidates,
			[]string{frac(n+2, d), frac(n, d+2), frac(n*k+1, d*k)})
		return mcq(r, skillID,
			fmt.Sprintf("Which fraction is equivalent to %s?", frac(n, d)),
			correct, distractors,
			"Hint: multiply top and bottom by the same number.", ErrConcept)
	}
}

func genDecimalsHundredths(r *rand.Rand) *Question {
	a := randBetween(r, 10, 99)
	b := randBetween(r, 10, 99)
	for b == a {
		b = randBetween(r, 10, 99)
	}
	x, y := hundredths(a), hundredths(b)
	correct, smaller := x, y
	if b > a {
		correct, smaller = y, x
	}
	seen := map[string]bool{correct: true, smaller: true}
	distractors := []string{smaller}
	for len(distractors) < 3 {
		d := hundredths(randBetween(r, 10, 99))
		if seen[d] {
			continue
		}
		seen[d] = true
		distractors = append(distractors, d)
	}
	return mcq(r, "g4_decimals_01",
		fmt.Sprintf("Which number is larger: %s or %s?", x, y),
		correct, distractors,
		"Hint: compare tenths first, then hundredths.", ErrPlace)
}

func genDiv2Digit(r *rand.Rand) *Question {
	b := randBetween(r, 2, 9)
	q := randBetween(r, 2, 20)
	a := b * q
	return mcq(r, "g5_div_2digit",
		fmt.Sprintf("%d / %d = ?", a, b),
		itoa(q), itoas(numericDistractors(r, q, 8)),
		"Hint: think of the times table in reverse.", ErrFact)
}

func genFracAddLike(r *rand.Rand) *Question {
	denoms := []int{2, 3, 4, 5, 6, 8, 10}
	d := denoms[r.Intn(len(denoms))]
	n1 := randBetween(r, 1, d-1)
	n2 := randBetween(r, 1, d-1)
	correct := frac(n1+n2, d)
	candidates := []string{frac(n1+n2, d+1), frac(n1, d), frac(n2, d)}
	distractors := stringDistinct(correct, candidates,
		[]string{frac(n1+n2+1, d), frac(n1*n2, d), frac(n1+n2, d+2)})
	return mcq(r, "g5_frac_add_like",
		fmt.Sprintf("Add: %s + %s", frac(n1, d), frac(n2, d)),
		correct, distractors,
		"Hint: same denominator, so add the numerators.", ErrConcept)
}

func genDecAddSub(r *rand.Rand) *Question {
	a := randBetween(r, 10, 99) // tenths
	b := randBetween(r, 10, 99)
	plus := r.Intn(2) == 0
	op := "-"
	ct := a - b
	if plus {
		op = "+"
		ct = a + b
	}
	distractors := make([]string, 0, 3)
	for _, dt := range numericDistractors(r, ct, 5) {
		distractors = append(distractors, tenthsStr(dt))
	}
	return mcq(r, "g5_dec_addsub",
		fmt.Sprintf("%s %s %s = ?", tenthsStr(a), op, tenthsStr(b)),
		tenthsStr(ct), distractors,
		"Hint: line up the decimal points.", ErrPlace)
}

func genPercentIntro(r *rand.Rand) *Question {
	bases := []int{20, 40, 60, 80, 100}
	percents := []int{10, 50}
	base := bases[r.Intn(len(bases))]
	p := percents[r.Intn(len(percents))]
	correct := base * p / 100
	return mcq(r, "g5_percent_intro",
		fmt.Sprintf("%d%% of %d = ?", p, base),
		itoa(correct), itoas(numericDistractors(r, correct, 15)),
		"Hint: 10% divides by 10; 50% is one half.", ErrConcept)
}

// genOrderOps is also the fallback for unknown skill IDs.
func genOrderOps(r *rand.Rand) *Question {
	a := randBetween(r, 2, 9)
	b := randBetween(r, 2, 9)
	c := randBetween(r, 1, 9)
	var expr string
	var correct int
	if r.Intn(2) == 0 {
		expr = fmt.Sprintf("(%d + %d) x %d", a, b, c)
		correct = (a + b) * c
	} else {
		expr = fmt.Sprintf("%d + %d x %d", a, b, c)
		correct = a + b*c
	}
	return mcq(r, "g6_order_ops",
		expr+" = ?",
		itoa(correct), itoas(numericDistractors(r, correct, 15)),
		"Hint: multiply before adding, unless parentheses say otherwise.", ErrProc)
}

func genDecCompare(r *rand.Rand) *Question {
	a := randBetween(r, 0, 9)
	b := randBetween(r, 0, 9)
	c := randBetween(r, 0, 9)
	d := randBetween(r, 0, 9)
	// Trailing zeros on purpose: 0.5 vs 0.50 is the classic trap.
	second := func() string {
		if r.Intn(10) < 6 {
			return "0"
		}
		return itoa(c)
	}
	n1 := fmt.Sprintf("%d.%d%s", a, b, second())
	n2 := fmt.Sprintf("%d.%d%s", a, d, second())
	v1 := b*10 + tail(n1)
	v2 := d*10 + tail(n2)
	correct := "Equal"
	if v1 > v2 {
		correct = n1
	} else if v2 > v1 {
		correct = n2
	}
	distractors := stringDistinct(correct, []string{n1, n2, "Equal"}, nil)
	seen := map[string]bool{correct: true}
	for _, s := range distractors {
		seen[s] = true
	}
	for len(distractors) < 3 {
		s := fmt.Sprintf("%d.%d%d", a, randBetween(r, 0, 9), randBetween(r, 0, 9))
		if seen[s] {
			continue
		}
		seen[s] = true
		distractors = append(distractors, s)
	}
	return mcq(r, "g6_dec_compare",
		fmt.Sprintf("Which is larger: %s or %s?", n1, n2),
		correct, distractors,
		"Hint: trailing zeros do not change the value (0.5 = 0.50).", ErrPlace)
}

// tail extracts the second decimal digit of "a.xy".
func tail(s string) int {
	return int(s[len(s)-1] - '0')
}

func genPercentSimple(r *rand.Rand) *Question {
	bases := []int{40, 60, 80, 100, 120}
	percents := []int{10, 25, 50}
	base := bases[r.Intn(len(bases))]
	p := percents[r.Intn(len(percents))]
	correct := base * p / 100
	return mcq(r, "g6_percent_simple",
		fmt.Sprintf("%d%% of %d = ?", p, base),
		itoa(correct), itoas(numericDistractors(r, correct, 20)),
		"Hint: 50% is half; 25% is half of half; 10% is a tenth.", ErrConcept)
}

func genIntOps(r *rand.Rand) *Question {
	a := randBetween(r, -10, 10)
	b := randBetween(r, -10, 10)
	plus := r.Intn(2) == 0
	op := "-"
	correct := a - b
	if plus {
		op = "+"
		correct = a + b
	}
	return mcq(r, "g7_int_ops",
		fmt.Sprintf("%d %s %d = ?", a, op, b),
		itoa(correct), itoas(numericDistractors(r, correct, 10)),
		"Hint: watch the signs.", ErrProc)
}

func genProportion(r *rand.Rand) *Question {
	x1 := randBetween(r, 2, 6)
	k := randBetween(r, 2, 5)
	x2 := randBetween(r, 2, 8)
	correct := x2 * k
	return mcq(r, "g7_prop",
		fmt.Sprintf("If %d becomes %d, what does %d become at the same rate?", x1, x1*k, x2),
		itoa(correct), itoas(numericDistractors(r, correct, 12)),
		"Hint: find the multiplying factor.", ErrConcept)
}

func genEqOneStep(r *rand.Rand) *Question {
	a := randBetween(r, 1, 9)
	x := randBetween(r, 1, 12)
	plus := r.Intn(2) == 0
	var prompt string
	if plus {
		prompt = fmt.Sprintf("x + %d = %d. What is x?", a, x+a)
	} else {
		prompt = fmt.Sprintf("x - %d = %d. What is x?", a, x-a)
	}
	return mcq(r, "g7_eq_1step", prompt,
		itoa(x), itoas(numericDistractors(r, x, 8)),
		"Hint: isolate x with the inverse operation.", ErrProc)
}

func genAlgebraSimplify(r *rand.Rand) *Question {
	a := randBetween(r, 1, 9)
	b := randBetween(r, 1, 9)
	correct := fmt.Sprintf("%dx", a+b)
	candidates := []string{
		fmt.Sprintf("%dx", a),
		fmt.Sprintf("%dx", b),
		fmt.Sprintf("%dx", a+b+1),
	}
	distractors := stringDistinct(correct, candidates,
		[]string{fmt.Sprintf("%dx", a+b-1), fmt.Sprintf("%dx", a*b), fmt.Sprintf("%dx", a+b+2)})
	return mcq(r, "g8_algebra_simplify",
		fmt.Sprintf("Simplify: %dx + %dx = ?", a, b),
		correct, distractors,
		"Hint: add the coefficients of like terms.", ErrConcept)
}

func genEqLinear(r *rand.Rand) *Question {
	a := randBetween(r, 2, 6)
	x := randBetween(r, 1, 10)
	b := randBetween(r, -6, 6)
	c := a*x + b
	sign := "+"
	if b < 0 {
		sign = "-"
	}
	return mcq(r, "g8_eq_linear",
		fmt.Sprintf("Solve: %dx %s %d = %d.", a, sign, absInt(b), c),
		itoa(x), itoas(numericDistractors(r, x, 8)),
		"Hint: move the constant across, then divide by the coefficient.", ErrProc)
}

func genFunctionEval(r *rand.Rand) *Question {
	a := randBetween(r, -3, 5)
	b := randBetween(r, -6, 6)
	x := randBetween(r, -4, 4)
	correct := a*x + b
	sign := "+"
	if b < 0 {
		sign = "-"
	}
	return mcq(r, "g8_functions_intro",
		fmt.Sprintf("If f(x) = %dx %s %d, what is f(%d)?", a, sign, absInt(b), x),
		itoa(correct), itoas(numericDistractors(r, correct, 12)),
		"Hint: substitute x and compute.", ErrProc)
}

func genPowers(r *rand.Rand) *Question {
	base := randBetween(r, 2, 6)
	exp := randBetween(r, 2, 4)
	correct := 1
	for i := 0; i < exp; i++ {
		correct *= base
	}
	return mcq(r, "g8_powers",
		fmt.Sprintf("%d^%d = ?", base, exp),
		itoa(correct), itoas(numericDistractors(r, correct, 20)),
		"Hint: multiply the base by itself.", ErrFact)
}

func genSystems(r *rand.Rand) *Question {
	x := randBetween(r, 1, 8)
	y := randBetween(r, 1, 8)
	return mcq(r, "g9_systems",
		fmt.Sprintf("If x + y = %d and x - y = %d, what is x?", x+y, x-y),
		itoa(x), itoas(numericDistractors(r, x, 6)),
		"Hint: add the two equations to eliminate y.", ErrConcept)
}

func genQuadratic(r *rand.Rand) *Question {
	p := randBetween(r, 1, 6)
	q := randBetween(r, 1, 6)
	return mcq(r, "g9_quadratic",
		fmt.Sprintf("Factor: x^2 + %dx + %d", p+q, p*q),
		factorPair(p, q), quadraticDistractors(r, p, q),
		"Hint: find two numbers that add to b and multiply to c.", ErrConcept)
}

// quadraticDistractors builds 3 distinct wrong factorizations of
// x^2 + (p+q)x + pq. Equal small roots make the fixed offsets collide, so the
// pool tops up with jittered pairs; every jittered pair has a larger root sum
// than (p, q) and can never equal the correct answer.
func quadraticDistractors(r *rand.Rand, p, q int) []string {
	b, c := p+q, p*q
	seen := map[string]bool{factorPair(p, q): true}
	var out []string
	add := func(d string) {
		if len(out) < 3 && !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	add(factorPair(p+1, q))
	add(factorPair(p, q+1))
	add(factorPair(b, c))
	for len(out) < 3 {
		add(factorPair(p+randBetween(r, 0, 3), q+randBetween(r, 1, 4)))
	}
	return out
}

// factorPair formats (x+p)(x+q) with the smaller root first so equal
// products always render as equal strings.
func factorPair(p, q int) string {
	if q < p {
		p, q = q, p
	}
	return fmt.Sprintf("(x+%d)(x+%d)", p, q)
}

func genSimilarity(r *rand.Rand) *Question {
	a := randBetween(r, 2, 6)
	b := randBetween(r, 2, 6)
	k := randBetween(r, 2, 5)
	correct := b * k
	return mcq(r, "g9_similarity",
		fmt.Sprintf("In similar figures, %d cm scales to %d cm. What does %d cm scale to?", a, a*k, b),
		itoa(correct), itoas(numericDistractors(r, correct, 10)),
		"Hint: use the same scale factor.", ErrConcept)
}

func genProbability(r *rand.Rand) *Question {
	f := randBetween(r, 1, 5)
	correct := frac(f, 6)
	candidates := []string{frac(f+1, 6), frac(f, 7), frac(1, 6)}
	distractors := stringDistinct(correct, candidates,
		[]string{frac(f+2, 6), frac(f, 8), frac(f+1, 7)})
	return mcq(r, "g9_probability",
		fmt.Sprintf("On a standard die, the probability of rolling a number in {1..%d} is:", f),
		correct, distractors,
		"Hint: probability = favourable cases / possible cases.", ErrConcept)
}

func genPatternsFor(skillID string) GenFunc {
	return func(r *rand.Rand) *Question {
		start := randBetween(r, 1, 5)
		step := randBetween(r, 2, 5)
		n4 := start + step*3
		return mcq(r, skillID,
			fmt.Sprintf("Complete the pattern: %d, %d, %d, __", start, start+step, start+step*2),
			itoa(n4), itoas(numericDistractors(r, n4, 10)),
			"Hint: look at the jump between terms.", ErrConcept)
	}
}

func genParity(r *rand.Rand) *Question {
	even := r.Intn(2) == 0
	correct := randBetween(r, 10, 99)
	for correct%2 != parityBit(even) {
		correct = randBetween(r, 10, 99)
	}
	want := "even"
	if !even {
		want = "odd"
	}
	seen := map[int]bool{correct: true}
	var distractors []string
	for len(distractors) < 3 {
		d := randBetween(r, 10, 99)
		if seen[d] || d%2 == parityBit(even) {
			continue
		}
		seen[d] = true
		distractors = append(distractors, itoa(d))
	}
	return mcq(r, "ob_parity",
		fmt.Sprintf("Which of these numbers is %s?", want),
		itoa(correct), distractors,
		"Hint: even numbers end in 0, 2, 4, 6 or 8.", ErrConcept)
}

func parityBit(even bool) int {
	if even {
		return 0
	}
	return 1
}

func genCounting(r *rand.Rand) *Question {
	a := randBetween(r, 2, 5)
	b := randBetween(r, 2, 5)
	c := randBetween(r, 2, 5)
	correct := a * b * c
	return mcq(r, "ob_counting",
		fmt.Sprintf("Choosing 1 item from each group of %d, %d and %d options, how many combinations are there?", a, b, c),
		itoa(correct), itoas(numericDistractors(r, correct, 12)),
		"Hint: multiply the option counts.", ErrConcept)
}

func frac(n, d int) string {
	return fmt.Sprintf("%d/%d", n, d)
}

// hundredths renders n hundredths (10..99) as "0.nn".
func hundredths(n int) string {
	return fmt.Sprintf("0.%02d", n)
}

// tenthsStr renders an integer number of tenths as a decimal string,
// dropping a trailing ".0".
func tenthsStr(t int) string {
	sign := ""
	if t < 0 {
		sign = "-"
		t = -t
	}
	if t%10 == 0 {
		return sign + itoa(t/10)
	}
	return fmt.Sprintf("%s%d.%d", sign, t/10, t%10)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func absInt(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
