package listing

import (
	"go.uber.org/zap"

	"github.com/spigell/grantmatch/internal/grants"
	"github.com/spigell/grantmatch/internal/logger"
	"github.com/spigell/grantmatch/internal/profile"
)

// Items evaluates every grant in the catalog once and attaches the user's flags.
func Items(c *grants.Catalog, p profile.Profile, state State) []*Item {
	all := c.All()
	items := make([]*Item, 0, len(all))
	for _, g := range all {
		flags := state.Get(g.ID)
		items = append(items, &Item{
			Grant:    g,
			Eligible: grants.Evaluate(g, p).Eligible,
			Saved:    flags.Saved,
			Applied:  flags.Applied,
		})
	}
	return items
}

// Run executes the supplied steps sequentially and logs every step at debug
// level. A nil logger is allowed.
func Run(log *zap.Logger, steps []Filter, items []*Item) []*Item {
	log = logger.WithFields(log)
	for _, step := range steps {
		next, info := step.Apply(items)
		log.Debug("list step",
			zap.String(logger.FieldListStep, step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)
		items = next
	}
	return items
}

// Derive produces the list for one render: search, then tab, then sort, then
// eligible-first on the All tab. The result depends only on the arguments and
// the inputs are never modified.
func Derive(c *grants.Catalog, p profile.Profile, q Query, state State, log *zap.Logger) []*Item {
	return Run(log, Steps(q), Items(c, p, state))
}
