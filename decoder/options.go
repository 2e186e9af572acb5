package decoder

import (
	"context"
	"fmt"

	"github.com/asticode/go-astiav"
	"github.com/xaionaro-go/drmprime/logger"
	"github.com/xaionaro-go/drmprime/types"
)

// dictionaryFromItems returns nil for empty items. The caller frees the
// returned dictionary.
func dictionaryFromItems(
	ctx context.Context,
	items types.DictionaryItems,
) (*astiav.Dictionary, error) {
	if len(items) == 0 {
		return nil, nil
	}

	result := astiav.NewDictionary()
	for _, opt := range items.Deduplicate() {
		logger.Tracef(ctx, "setting custom option: %s=%s", opt.Key, opt.Value)
		if err := result.Set(opt.Key, opt.Value, 0); err != nil {
			result.Free()
			return nil, fmt.Errorf("unable to set option %s=%s: %w", opt.Key, opt.Value, err)
		}
	}
	return result, nil
}
