package formatter

// PluginProofFormatter renders certificates proven by an external
// prover plugin, flagging that the proof was not produced in-process.
type PluginProofFormatter struct{}

func (f *PluginProofFormatter) CertificateTemplate() string {
	return `{{header .Goal}}{{factList .Facts}}{{outcome .Method}}{{stepTrace .Steps}}{{pluginNote}}{{elapsed .Elapsed}}`
}
