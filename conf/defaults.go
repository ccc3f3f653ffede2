package conf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/goccy/go-yaml"
)

// DecodeDefaults reads a YAML or JSON mapping from r and returns it as a
// Tree suitable for [WithDefaults].
//
// Scalar leaves are stored in their string form. Null leaves are dropped.
// Sequences are rejected.
func DecodeDefaults(ctx context.Context, r io.Reader) (Tree, error) {
	var raw map[string]any

	if err := yaml.NewDecoder(r).DecodeContext(ctx, &raw); err != nil {
		if errors.Is(err, io.EOF) {
			return Tree{}, nil
		}

		return nil, ErrDecodeDefaults.Wrap(err)
	}

	tree, err := stringify(raw, "")
	if err != nil {
		return nil, err
	}

	return Tree(tree), nil
}

func stringify(m map[string]any, prefix string) (map[string]any, error) {
	out := make(map[string]any, len(m))

	for k, v := range m {
		switch val := v.(type) {
		case nil:

		case map[string]any:
			sub, err := stringify(val, prefix+k+".")
			if err != nil {
				return nil, err
			}

			out[k] = sub

		case map[any]any:
			conv := make(map[string]any, len(val))
			for mk, mv := range val {
				conv[fmt.Sprint(mk)] = mv
			}

			sub, err := stringify(conv, prefix+k+".")
			if err != nil {
				return nil, err
			}

			out[k] = sub

		case []any:
			return nil, ErrDecodeDefaults.
				Wrap(fmt.Errorf("sequence at %q", prefix+k)).
				With(slog.String("key", prefix+k))

		case string:
			out[k] = val

		default:
			out[k] = fmt.Sprint(val)
		}
	}

	return out, nil
}
