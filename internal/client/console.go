package client

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"autobattler-client/internal/domain"
	"autobattler-client/pkg/logger"
)

var ErrBadIntent = errors.New("bad intent")

// ParseIntent разбирает строку консоли:
//
//	shop-click 3
//	refresh-click | lock-click | level-click
//	drag-drop {"x":1,"y":2,"id":"abc"}
//	sell-drop {"id":"abc"}
//	player-click <id>
func ParseIntent(line string) (domain.Intent, error) {
	name, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	in := domain.Intent{Kind: domain.ParseIntent(name)}
	switch in.Kind {
	case domain.IntentUnknown:
		return domain.Intent{}, fmt.Errorf("%w: unknown intent %q", ErrBadIntent, name)

	case domain.IntentShopClick:
		id, err := strconv.Atoi(arg)
		if err != nil {
			return domain.Intent{}, fmt.Errorf("%w: shop slot %q", ErrBadIntent, arg)
		}
		in.ShopID = id

	case domain.IntentDragDrop, domain.IntentSellDrop:
		if arg == "" {
			return domain.Intent{}, fmt.Errorf("%w: %s needs a detail object", ErrBadIntent, in.Kind)
		}
		if err := json.Unmarshal([]byte(arg), &in.Detail); err != nil {
			return domain.Intent{}, fmt.Errorf("%w: detail: %v", ErrBadIntent, err)
		}

	case domain.IntentPlayerClick:
		if arg == "" {
			return domain.Intent{}, fmt.Errorf("%w: player-click needs a player id", ErrBadIntent)
		}
		in.PlayerID = arg
	}
	return in, nil
}

// ReadIntents читает намерения построчно и передает их контейнеру.
// Пустые строки и строки с # пропускаются, ошибки разбора только логируются.
func ReadIntents(ctx context.Context, r io.Reader, c *GameContainer) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		in, err := ParseIntent(line)
		if err != nil {
			logger.Log.WithError(err).Warn("console")
			continue
		}
		if err := c.Submit(ctx, in); err != nil {
			return err
		}
	}
	return scanner.Err()
}
