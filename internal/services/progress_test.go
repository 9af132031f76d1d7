package services

import (
	"testing"

	"github.com/mattbolt/math-hack/internal/models"
)

func testPlayer(level int) *models.Player {
	return &models.Player{
		PlayerID:             "p1",
		Name:                 "Alice",
		DifficultyLevel:      level,
		MaxDifficultyReached: level,
	}
}

func TestApplyCorrectAnswerReward(t *testing.T) {
	tests := []struct {
		level  int
		reward int
	}{
		{1, 15},
		{5, 35},
		{9, 55},
	}

	for _, tc := range tests {
		p := testPlayer(tc.level)
		applyCorrectAnswer(p)
		if p.Credits != tc.reward {
			t.Errorf("level %d: expected reward %d, got %d", tc.level, tc.reward, p.Credits)
		}
		if p.ConsecutiveCorrect != 1 || p.CorrectAnswers != 1 {
			t.Errorf("level %d: streak/counter not advanced: %+v", tc.level, p)
		}
	}
}

func TestFiveStreakBumpsDifficultyOnce(t *testing.T) {
	p := testPlayer(1)
	for i := 0; i < 5; i++ {
		applyCorrectAnswer(p)
	}

	if p.DifficultyLevel != 2 {
		t.Fatalf("expected difficulty 2 after 5 straight correct, got %d", p.DifficultyLevel)
	}
	if p.ConsecutiveCorrect != 0 {
		t.Fatalf("streak should reset on bump, got %d", p.ConsecutiveCorrect)
	}
	if p.MaxDifficultyReached != 2 {
		t.Fatalf("high-water mark should track the bump, got %d", p.MaxDifficultyReached)
	}

	// A sixth correct answer must not double-increment.
	applyCorrectAnswer(p)
	if p.DifficultyLevel != 2 {
		t.Errorf("sixth correct answer bumped again: %d", p.DifficultyLevel)
	}
	if p.OverallConsecutiveCorrect != 6 {
		t.Errorf("overall streak should survive the bump, got %d", p.OverallConsecutiveCorrect)
	}
}

func TestRewardUsesPreBumpLevel(t *testing.T) {
	p := testPlayer(1)
	for i := 0; i < 5; i++ {
		applyCorrectAnswer(p)
	}
	// Five answers at level 1, each worth 10+5*1.
	if p.Credits != 75 {
		t.Errorf("expected 75 credits from five level-1 answers, got %d", p.Credits)
	}
}

func TestDifficultyCapsAtMax(t *testing.T) {
	p := testPlayer(MaxDifficulty)
	for i := 0; i < 10; i++ {
		applyCorrectAnswer(p)
	}
	if p.DifficultyLevel != MaxDifficulty {
		t.Errorf("difficulty exceeded cap: %d", p.DifficultyLevel)
	}
}

func TestThreeMissesDropDifficulty(t *testing.T) {
	p := testPlayer(3)
	for i := 0; i < 3; i++ {
		applyMiss(p, false, false)
	}

	if p.DifficultyLevel != 2 {
		t.Fatalf("expected difficulty 2 after 3 misses, got %d", p.DifficultyLevel)
	}
	if p.ConsecutiveWrong != 0 {
		t.Fatalf("wrong streak should reset on drop, got %d", p.ConsecutiveWrong)
	}
	if p.WrongAnswers != 3 {
		t.Fatalf("expected 3 wrong answers recorded, got %d", p.WrongAnswers)
	}
}

func TestDifficultyFlooredAtMin(t *testing.T) {
	p := testPlayer(1)
	for i := 0; i < 9; i++ {
		applyMiss(p, false, false)
	}
	if p.DifficultyLevel != MinDifficulty {
		t.Errorf("difficulty dropped below floor: %d", p.DifficultyLevel)
	}
}

func TestStreaksResetEachOther(t *testing.T) {
	p := testPlayer(1)
	applyCorrectAnswer(p)
	applyCorrectAnswer(p)
	applyMiss(p, false, false)

	if p.ConsecutiveCorrect != 0 {
		t.Errorf("miss should reset correct streak, got %d", p.ConsecutiveCorrect)
	}
	if p.ConsecutiveWrong != 1 {
		t.Errorf("expected wrong streak 1, got %d", p.ConsecutiveWrong)
	}

	applyCorrectAnswer(p)
	if p.ConsecutiveWrong != 0 {
		t.Errorf("correct answer should reset wrong streak, got %d", p.ConsecutiveWrong)
	}
}

func TestSkipPolicyControlsWrongAnswers(t *testing.T) {
	tests := []struct {
		name              string
		skipCountsAsWrong bool
		wantWrong         int
	}{
		{"skips excluded from accuracy", false, 0},
		{"skips counted as wrong", true, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := testPlayer(1)
			applyMiss(p, true, tc.skipCountsAsWrong)

			if p.WrongAnswers != tc.wantWrong {
				t.Errorf("expected %d wrong answers, got %d", tc.wantWrong, p.WrongAnswers)
			}
			if p.ConsecutiveWrong != 1 {
				t.Errorf("skip must advance the wrong streak, got %d", p.ConsecutiveWrong)
			}
		})
	}
}
