package dsl

// validateLinks checks every link endpoint against the set of declared
// screen names. It runs after the whole document is parsed, so forward
// references are fine and declaration order never matters. Navigation
// targets are deliberately not checked here.
func (p *parser) validateLinks() {
	defined := make(map[string]struct{}, len(p.result.Screens))
	for _, s := range p.result.Screens {
		defined[s.Name] = struct{}{}
	}
	for _, link := range p.result.Links {
		if _, ok := defined[link.Source]; !ok {
			p.errorf(link.LineNumber, "Source screen %q in link not defined.", link.Source)
		}
		if _, ok := defined[link.Target]; !ok {
			p.errorf(link.LineNumber, "Destination screen %q in link not defined.", link.Target)
		}
	}
}
