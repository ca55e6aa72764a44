package generator

import (
	"github.com/yourusername/quizgen-api/internal/domain/entity"
)

// customInput - общие данные текстового и картиночного кастомного вопроса
type customInput struct {
	text       string
	choices    []string
	answers    []string
	difficulty entity.Difficulty
	source     entity.QuestionSource
	valueType  string
	// urlPrefix добавляется к каждому варианту и ответу (для изображений)
	urlPrefix string
}

// renderCustom рендерит заранее составленный вопрос: выбирает один из
// допустимых ответов, добирает варианты из полного списка до нужной длины
// и перемешивает их
func (g *Generator) renderCustom(
	in customInput,
	category *entity.Category,
	mode *entity.GameMode,
) (*RenderedQuestion, error) {
	if len(in.answers) == 0 {
		return nil, genErrorf("%s question has no answers", in.source)
	}
	if len(in.choices) < g.cfg.NumChoices-1 {
		return nil, genErrorf("%s question has %d choices, need at least %d",
			in.source, len(in.choices), g.cfg.NumChoices-1)
	}

	answer := in.answers[g.intn(len(in.answers))]

	seen := map[string]bool{answer: true}
	choices := []string{answer}
	// Список может содержать дубликаты и сами ответы, поэтому количество
	// розыгрышей ограничено
	maxDraws := 100 * (g.cfg.NumChoices - 1)
	for draws := 0; len(choices) < g.cfg.NumChoices; draws++ {
		if draws >= maxDraws {
			return nil, genErrorf("could not collect %d distinct choices for %s question after %d draws",
				g.cfg.NumChoices, in.source, maxDraws)
		}
		candidate := in.choices[g.intn(len(in.choices))]
		if seen[candidate] {
			continue
		}
		seen[candidate] = true
		choices = append(choices, candidate)
	}
	g.shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})

	if in.urlPrefix != "" {
		answer = joinURL(in.urlPrefix, answer)
		for i, c := range choices {
			choices[i] = joinURL(in.urlPrefix, c)
		}
	}

	return &RenderedQuestion{
		Question:    in.text,
		Source:      in.source,
		Category:    category.Name,
		CategoryID:  category.ID,
		Rendered:    in.text,
		GameMode:    mode.Name,
		GameModeID:  mode.ID,
		Choices:     choices,
		ChoicesType: in.valueType,
		Answer:      answer,
		Type:        in.valueType,
		Difficulty:  in.difficulty,
	}, nil
}
