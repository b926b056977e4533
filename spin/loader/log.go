package loader

import "github.com/allape/gogger"

var l = gogger.New("spin.loader")
