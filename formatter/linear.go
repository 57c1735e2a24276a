package formatter

// LinearProofFormatter renders certificates discharged by
// Fourier-Motzkin elimination, noting that the entailment is exact over
// the rationals.
type LinearProofFormatter struct{}

func (f *LinearProofFormatter) CertificateTemplate() string {
	return `{{header .Goal}}{{factList .Facts}}{{outcome .Method}}{{stepTrace .Steps}}{{linearNote}}{{elapsed .Elapsed}}`
}
