package sparseembedding

import "go.uber.org/fx"

// FXModule provides *Embedder from a *Config supplied elsewhere.
var FXModule = fx.Module(
	"sparseembedding",
	fx.Provide(NewEmbedder),
)
