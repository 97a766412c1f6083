package main

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"example.com/weather-stream/src/flow"
)

/*
 * An extractors directory holds one <name>.yaml per extractor next to
 * the jq programs the configs point at:
 *
 *	extractors/
 *	  wunderground.yaml      {name: wunderground, filter: wunderground.jq}
 *	  wunderground.jq        select(.src == "wu") | sample(.station; .temp; .ts)
 */
func load_extractors(extractors_dir string) []*flow.Extractor {
	files, err := os.ReadDir(extractors_dir)
	if err != nil {
		logrus.Panicf("load_extractors unable to open directory %s %+v", extractors_dir, err)
	}

	extractors := make([]*flow.Extractor, 0, len(files))

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".yaml") {
			continue
		}

		buf, _ := os.ReadFile(extractors_dir + "/" + file.Name())

		config := flow.New_extractor_config(buf)
		if config == nil {
			logrus.Errorf("Unable to create extractor for file %s", file.Name())
			continue
		}
		if config.Disabled {
			logrus.Infof("Extractor %s is disabled", config.Name)
			continue
		}

		program, err := os.ReadFile(extractors_dir + "/" + config.Filter)
		if err != nil {
			logrus.Errorf("load_extractors readfile %s: %+v", config.Filter, err)
			continue
		}

		if extractor := flow.New_extractor(config.Name, string(program)); extractor != nil {
			extractors = append(extractors, extractor)
		} else {
			logrus.Errorf("Unable to create extractor %s", config.Name)
		}
	}

	return extractors
}
