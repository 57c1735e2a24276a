package formatter

// FailureFormatter renders unresolved certificates. There are no steps
// to trace; the failure reason and the runtime-check consequence are
// the whole story.
type FailureFormatter struct{}

func (f *FailureFormatter) CertificateTemplate() string {
	return `{{header .Goal}}{{factList .Facts}}{{failure .FailureReason}}{{elapsed .Elapsed}}`
}
