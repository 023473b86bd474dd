package globals

import "go.uber.org/zap"

func use() {
	_ = zap.NewNop()
	_ = zap.L()                        // want "zap.L uses the global logger"
	_ = zap.S()                        // want "zap.S uses the global logger"
	zap.ReplaceGlobals(zap.NewNop())() // want "zap.ReplaceGlobals uses the global logger"
}
