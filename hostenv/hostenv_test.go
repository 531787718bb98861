package hostenv

import "testing"

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestDetect_PlainHost(t *testing.T) {
	cfg := detect(lookupFrom(nil))

	if cfg.Serverless {
		t.Error("no markers set, Serverless should be false")
	}
	if !cfg.RetainHandle {
		t.Error("plain hosts retain resolved handles")
	}
	if !cfg.ResultCache {
		t.Error("result cache defaults on")
	}
}

func TestDetect_EachMarker(t *testing.T) {
	for _, marker := range serverlessMarkers {
		cfg := detect(lookupFrom(map[string]string{marker: "x"}))
		if !cfg.Serverless {
			t.Errorf("%s set: Serverless should be true", marker)
		}
		if cfg.RetainHandle {
			t.Errorf("%s set: serverless contexts must not retain handles", marker)
		}
		if !cfg.ResultCache {
			t.Errorf("%s set: result cache stays on", marker)
		}
	}
}

func TestDetect_EmptyMarkerIgnored(t *testing.T) {
	cfg := detect(lookupFrom(map[string]string{"VERCEL": ""}))
	if cfg.Serverless {
		t.Error("an empty marker value does not indicate serverless")
	}
}

func TestDetect_ReadsProcessEnvironment(t *testing.T) {
	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "ephemeris")
	if cfg := Detect(); !cfg.Serverless {
		t.Error("Detect should see the process environment")
	}
}
