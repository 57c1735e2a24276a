package formatter

// GeneralProofFormatter renders certificates proven by the constant,
// type-fact, or algebraic layer.
type GeneralProofFormatter struct{}

func (f *GeneralProofFormatter) CertificateTemplate() string {
	return `{{header .Goal}}{{factList .Facts}}{{outcome .Method}}{{stepTrace .Steps}}{{elapsed .Elapsed}}`
}
