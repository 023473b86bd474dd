package zap

type Logger struct{}

type SugaredLogger struct{}

func L() *Logger { return nil }

func S() *SugaredLogger { return nil }

func ReplaceGlobals(*Logger) func() { return func() {} }

func NewNop() *Logger { return nil }
