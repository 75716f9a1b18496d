// Package logging builds the uber/zap loggers used across DefinitionHelper.
//
// Production mode writes JSON, development mode writes colored console
// output. Log lines are advisory: nothing in the registry branches on
// whether a line was written.
//
//	logger := logging.NewDefault()
//	reg := definitionhelper.New(definitionhelper.WithLogger(logger))
package logging
