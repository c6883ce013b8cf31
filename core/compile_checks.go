package core

import glog "github.com/goliatone/go-logger/glog"

var (
	_ RenewalLocker    = (*SlotRenewalLocker)(nil)
	_ ProviderEventBus = (*MemoryProviderEventBus)(nil)
	_ SessionObserver  = NopSessionObserver{}
	_ MetricsRecorder  = NopMetricsRecorder{}

	_ Logger         = glog.Nop()
	_ LoggerProvider = glog.ProviderFromLogger(glog.Nop())
)
