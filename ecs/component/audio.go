package component

// SFX queues named sound effect requests for the audio system.
type SFX struct {
	Requests []string
}

func (s *SFX) Play(name string) {
	if s == nil || name == "" {
		return
	}
	s.Requests = append(s.Requests, name)
}

var SFXComponent = NewComponent[SFX]()
