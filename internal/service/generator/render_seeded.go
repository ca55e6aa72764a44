package generator

import (
	"context"
	"strings"

	"github.com/yourusername/quizgen-api/internal/domain/entity"
	"github.com/yourusername/quizgen-api/internal/kb"
)

// renderSeeded рендерит шаблонный вопрос: подставляет свойства случайного
// экземпляра-субъекта в шаблон и, для режима single_right, набирает
// дистракторы из значений остальных экземпляров класса
func (g *Generator) renderSeeded(
	ctx context.Context,
	q *entity.SeededQuestion,
	category *entity.Category,
	mode *entity.GameMode,
) (*RenderedQuestion, error) {
	instances, err := g.kb.ListInstances(ctx, q.MainClassID)
	if err != nil {
		return nil, genErrorf("failed to fetch instances of class %d: %v", q.MainClassID, err)
	}
	if len(instances) == 0 {
		return nil, genErrorf("class %d has no instances", q.MainClassID)
	}

	subjectIdx := g.intn(len(instances))
	subject := instances[subjectIdx]

	rendered := q.Text
	for _, prop := range q.TemplateProperties() {
		pv := subject.ValueByName(prop)
		if pv == nil {
			return nil, genErrorf("instance %d has no property %q", subject.ID, prop)
		}
		rendered = strings.ReplaceAll(rendered, "{"+prop+"}", pv.RawValue)
	}

	answerPV := subject.ValueByPropertyID(q.AnswerPropertyID)
	if answerPV == nil {
		return nil, genErrorf("instance %d has no answer property %d", subject.ID, q.AnswerPropertyID)
	}

	result := &RenderedQuestion{
		Question:   q.Text,
		Source:     entity.SourceSeeded,
		Category:   category.Name,
		CategoryID: category.ID,
		Rendered:   rendered,
		GameMode:   mode.Name,
		GameModeID: mode.ID,
		Difficulty: q.Difficulty,
	}

	// Текстовый режим: без вариантов, ответом служит сырое значение свойства
	if q.AnswerMode == entity.AnswerModeText {
		result.Answer = answerPV.RawValue
		result.Type = answerPV.PropertyType.RawType
		result.Choices = []string{}
		result.ChoicesType = ChoicesTypeText
		return result, nil
	}

	if len(instances)-1 < g.cfg.NumChoices-1 {
		return nil, genErrorf("class %d has only %d instances, need at least %d for distractors",
			q.MainClassID, len(instances), g.cfg.NumChoices)
	}

	// Субъект исключается из пула, чтобы его значение не попало в дистракторы
	pool := make([]kb.Instance, 0, len(instances)-1)
	pool = append(pool, instances[:subjectIdx]...)
	pool = append(pool, instances[subjectIdx+1:]...)

	answer, rawType, err := g.resolveValue(ctx, answerPV)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{answer: true}
	distractors := make([]string, 0, g.cfg.NumChoices-1)
	// Пул с массовыми дубликатами значений может крутить выборку бесконечно,
	// поэтому количество розыгрышей ограничено
	maxDraws := 100 * (g.cfg.NumChoices - 1)
	for draws := 0; len(distractors) < g.cfg.NumChoices-1; draws++ {
		if draws >= maxDraws {
			return nil, genErrorf("could not collect %d distinct distractors for class %d after %d draws",
				g.cfg.NumChoices-1, q.MainClassID, maxDraws)
		}
		candidate := pool[g.intn(len(pool))]
		pv := candidate.ValueByPropertyID(q.AnswerPropertyID)
		if pv == nil {
			continue
		}
		value, _, err := g.resolveValue(ctx, pv)
		if err != nil {
			return nil, err
		}
		if seen[value] {
			continue
		}
		seen[value] = true
		distractors = append(distractors, value)
	}

	// Ответ вставляется на случайную позицию среди дистракторов
	answerIdx := g.intn(len(distractors) + 1)
	choices := make([]string, 0, g.cfg.NumChoices)
	choices = append(choices, distractors[:answerIdx]...)
	choices = append(choices, answer)
	choices = append(choices, distractors[answerIdx:]...)

	result.Answer = answer
	result.Type = rawType
	result.Choices = choices
	result.ChoicesType = ChoicesTypeText
	if rawType == kb.RawTypeImage {
		result.ChoicesType = ChoicesTypeImage
	}
	return result, nil
}

// resolveValue приводит значение свойства к отображаемому виду:
// ссылка на экземпляр разрешается в его имя, путь к изображению получает
// префикс медиа-URL базы знаний, скаляр возвращается как есть
func (g *Generator) resolveValue(ctx context.Context, pv *kb.PropertyValue) (string, string, error) {
	rawType := pv.PropertyType.RawType
	switch rawType {
	case kb.RawTypeInstance:
		inst, err := g.kb.GetInstance(ctx, pv.RawValue)
		if err != nil {
			return "", "", genErrorf("failed to resolve referenced instance %q: %v", pv.RawValue, err)
		}
		return inst.Name, rawType, nil
	case kb.RawTypeImage:
		return joinURL(g.cfg.KBMediaBaseURL, pv.RawValue), rawType, nil
	default:
		return pv.RawValue, rawType, nil
	}
}

// joinURL склеивает базовый URL и относительный путь через одиночный "/"
func joinURL(base, path string) string {
	if base == "" {
		return path
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
