package serviceImp

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"strings"
	"time"

	"agrismart/pkg/advisory/service"
	"agrismart/pkg/ai"
	"agrismart/pkg/apperr"
	cropSvc "agrismart/pkg/crop/service"
	kbSvc "agrismart/pkg/kb/service"
	taskSvc "agrismart/pkg/task/service"
)

const kbSnippets = 3

type advisorySvc struct {
	llm     ai.Client
	crops   cropSvc.CropService
	tasks   taskSvc.TaskService
	kb      kbSvc.KBService
	timeout time.Duration
}

// New wires the advisory service. kb may be nil.
func New(llm ai.Client, crops cropSvc.CropService, tasks taskSvc.TaskService, kb kbSvc.KBService, timeout time.Duration) service.AdvisoryService {
	if timeout <= 0 {
		timeout = 25 * time.Second
	}
	return &advisorySvc{llm: llm, crops: crops, tasks: tasks, kb: kb, timeout: timeout}
}

func (s *advisorySvc) Advice(ctx context.Context, query string, userCtx map[string]any) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", fmt.Errorf("query is required: %w", apperr.ErrValidation)
	}
	farmCtx := s.farmContext(ctx, query, userCtx)

	var answer string
	err := s.call(ctx, "advice", func(ctx context.Context) error {
		var err error
		answer, err = s.llm.Advice(ctx, query, farmCtx)
		return err
	})
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(answer) == "" {
		return service.FallbackAnswer, nil
	}
	return answer, nil
}

func (s *advisorySvc) Diagnose(ctx context.Context, imageB64, mimeType string) (*ai.Diagnosis, error) {
	img, mt, err := decodeImage(imageB64)
	if err != nil {
		return nil, err
	}
	if mimeType == "" {
		mimeType = mt
	}
	var out *ai.Diagnosis
	err = s.call(ctx, "diagnose", func(ctx context.Context) error {
		var err error
		out, err = s.llm.Diagnose(ctx, img, mimeType)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *advisorySvc) MarketTrends(ctx context.Context) ([]ai.MarketTrend, error) {
	var out []ai.MarketTrend
	err := s.call(ctx, "market trends", func(ctx context.Context) error {
		var err error
		out, err = s.llm.MarketTrends(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []ai.MarketTrend{}
	}
	return out, nil
}

// call runs fn under the advisory timeout and turns every failure,
// panics included, into ErrTryAgain.
func (s *advisorySvc) call(ctx context.Context, op string, fn func(context.Context) error) (err error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ai] %s panicked: %v", op, r)
			err = service.ErrTryAgain
		}
	}()
	if err := fn(ctx); err != nil {
		log.Printf("[ai] %s failed: %v", op, err)
		return service.ErrTryAgain
	}
	return nil
}

// farmContext copies the caller's context and adds what the store knows
// under the ai.Ctx* keys. Lookup failures are logged and skipped; advice
// still goes out.
func (s *advisorySvc) farmContext(ctx context.Context, query string, userCtx map[string]any) map[string]any {
	out := make(map[string]any, len(userCtx)+3)
	for k, v := range userCtx {
		out[k] = v
	}

	if crops, err := s.crops.ListCrops(ctx); err != nil {
		log.Printf("[ai] farm context crops: %v", err)
	} else if len(crops) > 0 {
		names := make([]string, 0, len(crops))
		for _, c := range crops {
			n := c.Name
			if c.Variety != nil && *c.Variety != "" {
				n += " (" + *c.Variety + ")"
			}
			names = append(names, n+" - "+c.Status)
		}
		out[ai.CtxCrops] = names
	}

	if tasks, err := s.tasks.ListTasks(ctx); err != nil {
		log.Printf("[ai] farm context tasks: %v", err)
	} else {
		open := []string{}
		for _, t := range tasks {
			if t.Completed {
				continue
			}
			line := t.TaskName
			if t.DueDate != nil && *t.DueDate != "" {
				line += " (due " + *t.DueDate + ")"
			}
			open = append(open, line)
		}
		if len(open) > 0 {
			out[ai.CtxOpenTasks] = open
		}
	}

	if s.kb != nil {
		if hits, err := s.kb.Search(ctx, query, kbSnippets); err != nil {
			log.Printf("[ai] farm context kb: %v", err)
		} else if len(hits) > 0 {
			notes := make([]string, 0, len(hits))
			for _, h := range hits {
				notes = append(notes, h.Text)
			}
			out[ai.CtxKBNotes] = notes
		}
	}
	return out
}

// decodeImage accepts raw base64 or a data URL and returns the bytes and
// the mime type found in the prefix (image/jpeg when there is none).
func decodeImage(s string) ([]byte, string, error) {
	s = strings.TrimSpace(s)
	mimeType := "image/jpeg"
	if strings.HasPrefix(s, "data:") {
		head, data, ok := strings.Cut(s, ",")
		if !ok {
			return nil, "", fmt.Errorf("malformed data url: %w", apperr.ErrValidation)
		}
		if mt, _, _ := strings.Cut(strings.TrimPrefix(head, "data:"), ";"); mt != "" {
			mimeType = mt
		}
		s = data
	}
	if s == "" {
		return nil, "", fmt.Errorf("image is required: %w", apperr.ErrValidation)
	}
	img, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, "", fmt.Errorf("image is not valid base64: %w", apperr.ErrValidation)
	}
	return img, mimeType, nil
}
