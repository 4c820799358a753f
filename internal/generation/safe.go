package generation

import (
	"context"
	"fmt"
)

// Capabilities are third-party code. A panic inside one must surface as an
// ordinary error so the front end can report it.

func safeComplete(ctx context.Context, p Pipeline, prompt string, params Params) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic in Complete: %v", rec)
		}
	}()
	return p.Complete(ctx, prompt, params)
}

func safeEncode(ctx context.Context, m Model, text string) (ids []int, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic in Encode: %v", rec)
		}
	}()
	return m.Encode(ctx, text)
}

func safeGenerate(ctx context.Context, m Model, ids []int, params Params) (out []int, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic in Generate: %v", rec)
		}
	}()
	return m.Generate(ctx, ids, params)
}

func safeDecode(ctx context.Context, d Decoder, ids []int) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic in Decode: %v", rec)
		}
	}()
	return d.Decode(ctx, ids)
}
