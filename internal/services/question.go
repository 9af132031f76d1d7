package services

import (
	"fmt"
	"math/rand"

	"github.com/mattbolt/math-hack/internal/models"

	"github.com/google/uuid"
)

const (
	MinDifficulty = 1
	MaxDifficulty = 9
)

// GenerateQuestion builds an arithmetic question for the given difficulty.
// The operation pool and operand magnitudes widen with difficulty; the answer
// is always an exact integer and always appears exactly once among the four
// options.
func GenerateQuestion(difficulty int) models.Question {
	if difficulty < MinDifficulty {
		difficulty = MinDifficulty
	}
	if difficulty > MaxDifficulty {
		difficulty = MaxDifficulty
	}

	ops := operationsForDifficulty(difficulty)
	operation := ops[rand.Intn(len(ops))]

	var left, right, answer int
	switch operation {
	case models.OpAddition:
		left, right = randOperand(difficulty), randOperand(difficulty)
		answer = left + right
	case models.OpSubtraction:
		left, right = randOperand(difficulty), randOperand(difficulty)
		if right > left {
			left, right = right, left
		}
		answer = left - right
	case models.OpMultiplication:
		left, right = randFactor(difficulty), randFactor(difficulty)
		answer = left * right
	case models.OpDivision:
		// Pick divisor and quotient first so the result is always integral.
		right = randIn(2, 2+difficulty)
		answer = randIn(1, 10+difficulty*5)
		left = answer * right
	}

	timeLimit := 35 - difficulty*2
	if timeLimit < 15 {
		timeLimit = 15
	}

	return models.Question{
		ID:         uuid.NewString(),
		Text:       fmt.Sprintf("%d %s %d = ?", left, operationSymbol(operation), right),
		Answer:     answer,
		Options:    buildOptions(answer, operation),
		Operation:  operation,
		Difficulty: difficulty,
		TimeLimit:  timeLimit,
	}
}

func operationsForDifficulty(difficulty int) []string {
	switch {
	case difficulty <= 1:
		return []string{models.OpAddition}
	case difficulty <= 3:
		return []string{models.OpAddition, models.OpSubtraction}
	case difficulty <= 4:
		return []string{models.OpAddition, models.OpSubtraction, models.OpMultiplication}
	default:
		return []string{models.OpAddition, models.OpSubtraction, models.OpMultiplication, models.OpDivision}
	}
}

// randOperand picks an addition/subtraction operand sized for the tier:
// single digits first, then one side double-digit, then both, then a
// triple-digit left operand at the top tiers.
func randOperand(difficulty int) int {
	switch {
	case difficulty <= 2:
		return randIn(1, 9)
	case difficulty <= 4:
		if rand.Intn(2) == 0 {
			return randIn(10, 99)
		}
		return randIn(1, 9)
	case difficulty <= 7:
		return randIn(10, 99)
	default:
		if rand.Intn(2) == 0 {
			return randIn(100, 999)
		}
		return randIn(10, 99)
	}
}

func randFactor(difficulty int) int {
	upper := difficulty * 10
	if upper > 50 {
		upper = 50
	}
	return randIn(2, upper)
}

func randIn(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rand.Intn(hi-lo+1)
}

// buildOptions seeds the option set with the true answer and jitters it to
// produce three distinct wrong candidates, then shuffles.
func buildOptions(answer int, operation string) []int {
	spread := 5
	if operation != models.OpDivision {
		half := answer / 2
		if half < 0 {
			half = -half
		}
		if half > spread {
			spread = half
		}
	}

	seen := map[int]bool{answer: true}
	options := []int{answer}
	for len(options) < 4 {
		candidate := answer + randIn(-spread, spread)
		if seen[candidate] {
			continue
		}
		seen[candidate] = true
		options = append(options, candidate)
	}

	rand.Shuffle(len(options), func(a, b int) {
		options[a], options[b] = options[b], options[a]
	})
	return options
}

func operationSymbol(operation string) string {
	switch operation {
	case models.OpSubtraction:
		return "-"
	case models.OpMultiplication:
		return "×"
	case models.OpDivision:
		return "÷"
	default:
		return "+"
	}
}
