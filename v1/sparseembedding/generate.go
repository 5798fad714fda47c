package sparseembedding

//go:generate go tool oapi-codegen -config cfg.yaml api.yml
