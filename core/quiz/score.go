package quiz

import (
	"github.com/pkg/errors"

	"github.com/trezcool/eduroot/core"
)

var ErrNoQuestions = errors.New("quiz has no questions")

// Grade compares answers with the quiz's correct answers.
// Each question counts once; a missing answer is incorrect. The score is not rounded.
func Grade(qz Quiz, answers map[string]string) (Score, error) {
	total := len(qz.Questions)
	if total == 0 {
		return Score{}, core.NewValidationError(ErrNoQuestions)
	}

	var correct int
	for _, qn := range qz.Questions {
		if ans, ok := answers[qn.ID]; ok && ans == qn.CorrectAnswer {
			correct++
		}
	}
	return Score{
		Score:   100 * float64(correct) / float64(total),
		Correct: correct,
		Total:   total,
	}, nil
}
